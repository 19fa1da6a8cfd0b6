// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package layout places a rendered tree image
// on a fixed size report page.
package layout

import (
	"math"

	"gonum.org/v1/plot/vg"
)

// A Box is the bounding box of a rendered image,
// in printer points,
// with the origin at the lower left corner of the page.
type Box struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Y2 - b.Y1
}

// A Geometry is the fixed geometry of a report page:
// the page size and the margin
// kept on every side of the content area.
// All values are in printer points.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// Letter is the default page geometry,
// a US letter page
// with half an inch of margin.
func Letter() Geometry {
	return Geometry{
		Width:  8.5 * float64(vg.Inch),
		Height: 11 * float64(vg.Inch),
		Margin: 0.5 * float64(vg.Inch),
	}
}

// ContentWidth returns the width of the content area,
// the page width minus both margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// ContentHeight returns the height of the content area.
func (g Geometry) ContentHeight() float64 {
	return g.Height - 2*g.Margin
}

// Place transforms the bounding box of a rendered image
// into its final position on a report page.
//
// The coordinates are truncated to whole points,
// shifted by the page margin on both axes,
// and then,
// if the box overflows the content area
// on either axis,
// scaled by a single uniform factor
// so that the box fits in both dimensions
// while keeping its aspect ratio.
func (g Geometry) Place(b Box) Box {
	b = Box{
		X1: math.Trunc(b.X1),
		Y1: math.Trunc(b.Y1),
		X2: math.Trunc(b.X2),
		Y2: math.Trunc(b.Y2),
	}
	b.X1 += g.Margin
	b.X2 += g.Margin
	b.Y1 += g.Margin
	b.Y2 += g.Margin

	cw := g.ContentWidth()
	ch := g.ContentHeight()
	if b.X2 <= cw && b.Y2 <= ch {
		return b
	}

	s := min(cw/b.X2, ch/b.Y2)
	return Box{
		X1: b.X1 * s,
		Y1: b.Y1 * s,
		X2: b.X2 * s,
		Y2: b.Y2 * s,
	}
}
