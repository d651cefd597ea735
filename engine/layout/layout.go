// Package layout computes pie-slice geometry and label placement for a wheel
// of equal segments. All functions are pure: the same input always produces
// the same output and the item list is never modified.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nathoo/spinwheel/engine/angle"
	"github.com/nathoo/spinwheel/types"
)

// Defaults used when Options fields are zero.
const (
	DefaultLineCap     = 12
	DefaultLabelRadius = 0.65
	MaxLabelLines      = 2
	Ellipsis           = "..."
)

// Options tunes label placement. The zero value uses the defaults.
type Options struct {
	LineCap     int     // max runes per label line
	LabelRadius float64 // anchor distance from center as a fraction of R
}

func (o Options) withDefaults() Options {
	if o.LineCap <= 0 {
		o.LineCap = DefaultLineCap
	}
	if o.LabelRadius <= 0 {
		o.LabelRadius = DefaultLabelRadius
	}
	return o
}

// Segments lays out one slice per item for a wheel of the given radius,
// centered at (radius, radius). An empty item list yields no segments.
func Segments(items []types.WheelItem, radius float64, opts Options) []types.SegmentGeometry {
	n := len(items)
	if n == 0 {
		return nil
	}
	opts = opts.withDefaults()

	center := types.Point{X: radius, Y: radius}
	width := angle.SegmentWidth(n)

	segs := make([]types.SegmentGeometry, 0, n)
	for i, item := range items {
		start := float64(i) * width
		end := float64(i+1) * width
		bisector := (start + end) / 2

		seg := types.SegmentGeometry{
			Index:         i,
			Item:          item,
			StartAngle:    start,
			EndAngle:      end,
			BisectorAngle: bisector,
			Start:         polar(center, radius, start),
			End:           polar(center, radius, end),
			LargeArc:      width > 180,
			FullCircle:    n == 1,
			LabelAnchor:   polar(center, radius*opts.LabelRadius, bisector),
			LabelRotation: bisector + 90,
			LabelLines:    WrapLabel(item.Label, opts.LineCap),
		}
		if seg.FullCircle {
			seg.Path = circlePath(center, radius)
		} else {
			seg.Path = slicePath(center, radius, seg.Start, seg.End, seg.LargeArc)
		}
		segs = append(segs, seg)
	}
	return segs
}

// SegmentAt returns the index of the segment drawn at screen angle deg when
// the wheel is rotated by rotation. It is the same mapping the pointer uses,
// so renderers and the selection always agree.
func SegmentAt(deg, rotation float64, n int) int {
	idx, err := angle.Resolve(rotation, n, deg)
	if err != nil {
		return -1
	}
	return idx
}

// polar returns the point at distance r from c along angle deg.
func polar(c types.Point, r, deg float64) types.Point {
	rad := deg * math.Pi / 180
	return types.Point{
		X: round(c.X + r*math.Cos(rad)),
		Y: round(c.Y + r*math.Sin(rad)),
	}
}

// round trims float noise so paths are stable and readable.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func slicePath(c types.Point, r float64, start, end types.Point, large bool) string {
	largeFlag := 0
	if large {
		largeFlag = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		num(c.X), num(c.Y),
		num(start.X), num(start.Y),
		num(r), num(r), largeFlag,
		num(end.X), num(end.Y))
}

// circlePath draws a full disk as two half arcs; a single arc whose start
// and end coincide would render as nothing.
func circlePath(c types.Point, r float64) string {
	left, right := num(c.X-r), num(c.X+r)
	return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
		left, num(c.Y),
		num(r), num(r), right, num(c.Y),
		num(r), num(r), left, num(c.Y))
}

func num(v float64) string {
	return strconv.FormatFloat(round(v), 'f', -1, 64)
}

// WrapLabel greedily packs the words of label onto lines of at most lineCap
// runes. At most two lines are returned; when a third would be needed the
// second line is cut to lineCap-3 runes and "..." is appended. Words longer
// than lineCap are split.
func WrapLabel(label string, lineCap int) []string {
	if lineCap <= 0 {
		lineCap = DefaultLineCap
	}

	var words []string
	for _, w := range strings.Fields(label) {
		words = append(words, splitRunes(w, lineCap)...)
	}
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := ""
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if runeLen(cur)+1+runeLen(w) <= lineCap {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	lines = append(lines, cur)

	if len(lines) <= MaxLabelLines {
		return lines
	}

	keep := lineCap - len(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	second := []rune(lines[1])
	if len(second) > keep {
		second = second[:keep]
	}
	lines[1] = strings.TrimRight(string(second), " ") + Ellipsis
	return lines[:MaxLabelLines]
}

// splitRunes breaks w into chunks of at most n runes.
func splitRunes(w string, n int) []string {
	r := []rune(w)
	if len(r) <= n {
		return []string{w}
	}
	var out []string
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
