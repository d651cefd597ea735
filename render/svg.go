// Package render draws a wheel from its layout: an SVG document for the web
// and a character raster for terminals.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/nathoo/spinwheel/types"
)

// SVG returns a standalone SVG document for the given segments. The slices
// are grouped and rotated about the center by rotation degrees; the pointer
// triangle sits above the wheel and does not rotate.
func SVG(segs []types.SegmentGeometry, radius, rotation float64) string {
	size := 2 * radius
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 %s %s %s">`,
		f(size), f(size+pointerHeight), f(-pointerHeight), f(size), f(size+pointerHeight))
	b.WriteByte('\n')

	if len(segs) == 0 {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="#EEEEEE" stroke="#999999"/>`+"\n",
			f(radius), f(radius), f(radius))
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="middle" font-size="14" fill="#666666">Add items to spin</text>`+"\n",
			f(radius), f(radius))
	} else {
		fmt.Fprintf(&b, `  <g transform="rotate(%s %s %s)">`+"\n", f(rotation), f(radius), f(radius))
		for _, s := range segs {
			fmt.Fprintf(&b, `    <path d="%s" fill="%s" stroke="#FFFFFF" stroke-width="2"/>`+"\n",
				s.Path, html.EscapeString(s.Item.Color))
			writeLabel(&b, s)
		}
		b.WriteString("  </g>\n")
	}

	fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="#FFFFFF" stroke="#333333" stroke-width="2"/>`+"\n",
		f(radius), f(radius), f(hubRadius))
	fmt.Fprintf(&b, `  <polygon points="%s,%s %s,%s %s,%s" fill="#333333"/>`+"\n",
		f(radius-pointerHalfWidth), f(-pointerHeight),
		f(radius+pointerHalfWidth), f(-pointerHeight),
		f(radius), f(pointerTip))
	b.WriteString("</svg>\n")
	return b.String()
}

const (
	pointerHeight    = 20
	pointerHalfWidth = 12
	pointerTip       = 10 // y of the tip, just inside the rim
	hubRadius        = 12
	lineHeight       = 14
)

func writeLabel(b *strings.Builder, s types.SegmentGeometry) {
	if len(s.LabelLines) == 0 {
		return
	}
	x, y := s.LabelAnchor.X, s.LabelAnchor.Y
	fmt.Fprintf(b, `    <text x="%s" y="%s" transform="rotate(%s %s %s)" text-anchor="middle" dominant-baseline="middle" font-size="12" fill="#FFFFFF">`,
		f(x), f(y), f(s.LabelRotation), f(x), f(y))
	// Center the block of lines on the anchor.
	first := -float64(len(s.LabelLines)-1) / 2 * lineHeight
	for i, line := range s.LabelLines {
		dy := lineHeight
		if i == 0 {
			dy = int(first)
		}
		fmt.Fprintf(b, `<tspan x="%s" dy="%d">%s</tspan>`, f(x), dy, html.EscapeString(line))
	}
	b.WriteString("</text>\n")
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
