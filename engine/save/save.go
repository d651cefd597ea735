// Package save implements JSON serialization and deserialization of wheel state.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/spinwheel/types"
)

// FormatVersion is written into every save file.
const FormatVersion = "1"

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version     string              `json:"version"`
	Title       string              `json:"title"`
	Items       []types.WheelItem   `json:"items"`
	Rotation    float64             `json:"rotation"`
	NextID      int                 `json:"next_id"`
	RNGSeed     int64               `json:"rng_seed"`
	RNGPosition int64               `json:"rng_position"`
	Presets     map[string][]string `json:"presets,omitempty"`
	Selected    *types.Selection    `json:"selected,omitempty"`
}

// Save serializes wheel state to JSON bytes.
func Save(s *types.WheelState, rngPos int64, selected *types.Selection) ([]byte, error) {
	data := SaveData{
		Version:     FormatVersion,
		Title:       s.Title,
		Items:       s.Items,
		Rotation:    s.Rotation,
		NextID:      s.NextID,
		RNGSeed:     s.RNGSeed,
		RNGPosition: rngPos,
		Presets:     s.Presets,
		Selected:    selected,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported save version %q", sd.Version)
	}
	if sd.RNGPosition < 0 {
		return nil, fmt.Errorf("invalid rng position %d", sd.RNGPosition)
	}
	// Ensure collections are never nil after load.
	if sd.Items == nil {
		sd.Items = []types.WheelItem{}
	}
	if sd.Presets == nil {
		sd.Presets = map[string][]string{}
	}
	return &sd, nil
}

// ApplySave applies loaded save data onto a state.
func ApplySave(s *types.WheelState, sd *SaveData) {
	s.Title = sd.Title
	s.Items = sd.Items
	s.Rotation = sd.Rotation
	s.NextID = sd.NextID
	s.RNGSeed = sd.RNGSeed
	s.Presets = sd.Presets
}
