package render

import (
	"math"

	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/types"
)

// CellAspect is how much taller a terminal cell is than it is wide.
const CellAspect = 2.0

// Outside marks raster cells that fall off the disk.
const Outside = -1

// ASCII rasterises the wheel into a height×width grid of segment indices.
// Cells outside the disk hold Outside. Each cell is sampled at its center,
// and the vertical axis is stretched by CellAspect so the disk looks round.
func ASCII(items []types.WheelItem, rotation float64, width, height int) [][]int {
	if width <= 0 || height <= 0 {
		return nil
	}
	n := len(items)

	halfW := float64(width) / 2
	halfH := float64(height) / 2 * CellAspect
	r := math.Min(halfW, halfH)

	grid := make([][]int, height)
	for row := range grid {
		line := make([]int, width)
		y := (float64(row)+0.5)*CellAspect - halfH
		for col := range line {
			x := float64(col) + 0.5 - halfW
			if n == 0 || x*x+y*y > r*r {
				line[col] = Outside
				continue
			}
			deg := math.Atan2(y, x) * 180 / math.Pi
			line[col] = layout.SegmentAt(deg, rotation, n)
		}
		grid[row] = line
	}
	return grid
}
