// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"github.com/pathotrack/pathotrack/annotate"
	"github.com/pathotrack/pathotrack/layout"

	// Register the Liberation fonts in font.DefaultCache.
	_ "gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Draw draws the tree on a vector graphics canvas,
// inside the given page box.
// The box is expected to keep the aspect ratio
// of the bounding box reported by Bounds,
// as produced by the page layout.
func (rt *Tree) Draw(c draw.Canvas, b layout.Box) {
	nb := rt.Bounds()
	s := 1.0
	if nb.Width() > 0 {
		s = b.Width() / nb.Width()
	}
	tr := transform{x0: b.X1, yTop: b.Y2, scale: s}

	sty := draw.LineStyle{
		Color: color.Black,
		Width: vg.Length(2 * s),
	}
	rt.root.strokes(c, sty, tr)
	rt.root.texts(c, tr)
}

// A transform maps drawing coordinates
// (origin at the top left corner, y grows down)
// to page coordinates
// (origin at the bottom left corner of the page, y grows up).
type transform struct {
	x0    float64
	yTop  float64
	scale float64
}

func (t transform) point(x, y float64) vg.Point {
	return vg.Point{
		X: vg.Length(t.x0 + x*t.scale),
		Y: vg.Length(t.yTop - y*t.scale),
	}
}

func (n *node) strokes(c draw.Canvas, sty draw.LineStyle, tr transform) {
	// horizontal line
	x0 := n.x - 5
	if n.anc != nil {
		x0 = n.anc.x
	}
	p0 := tr.point(x0, float64(n.y))
	p1 := tr.point(n.x, float64(n.y))
	c.StrokeLine2(sty, p0.X, p0.Y, p1.X, p1.Y)

	if n.desc == nil {
		return
	}

	// vertical line
	p0 = tr.point(n.x, float64(n.topY))
	p1 = tr.point(n.x, float64(n.botY))
	c.StrokeLine2(sty, p0.X, p0.Y, p1.X, p1.Y)

	for _, d := range n.desc {
		d.strokes(c, sty, tr)
	}
}

func (n *node) texts(c draw.Canvas, tr transform) {
	if n.desc == nil && n.label != "" {
		sty := text.Style{
			Color: rgba(n.color),
			Font: font.Font{
				Typeface: "Liberation",
				Variant:  "Sans",
				Size:     vg.Length(10 * tr.scale),
			},
			XAlign:  draw.XLeft,
			YAlign:  draw.YCenter,
			Handler: text.Plain{Fonts: font.DefaultCache},
		}
		c.FillText(sty, tr.point(n.x+10, float64(n.y)), n.label)
	}

	for _, d := range n.desc {
		d.texts(c, tr)
	}
}

func rgba(c annotate.Color) color.Color {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	}
}
