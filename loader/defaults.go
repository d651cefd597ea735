package loader

import "github.com/nathoo/spinwheel/types"

// Default returns the built-in wheel used when no definition file is given.
func Default() *types.WheelDef {
	return &types.WheelDef{
		Title:    "Spinning Wheel Picker",
		Radius:   DefaultRadius,
		LabelCap: DefaultLabelCap,
		Items: []types.WheelItem{
			{Label: "Movie: Inception", Color: "#FF6B6B"},
			{Label: "Movie: The Matrix", Color: "#4ECDC4"},
			{Label: "Movie: Interstellar", Color: "#45B7D1"},
			{Label: "Movie: The Dark Knight", Color: "#96CEB4"},
			{Label: "Movie: Pulp Fiction", Color: "#FFEAA7"},
			{Label: "Movie: The Shawshank Redemption", Color: "#DDA0DD"},
		},
		Presets: map[string][]string{
			"movies": {
				"Movie: The Godfather",
				"Movie: Forrest Gump",
				"Movie: The Lion King",
				"Movie: Jurassic Park",
				"Movie: Titanic",
				"Movie: Avatar",
				"Movie: The Avengers",
				"Movie: Frozen",
			},
		},
	}
}
