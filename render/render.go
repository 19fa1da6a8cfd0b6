// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package render draws an annotated tree
// as a vector image.
//
// Two backends are provided:
// a standalone SVG file,
// and a vector graphics canvas
// used when composing report pages.
// Both share the same node layout,
// so the bounding box reported by Bounds
// is valid for either backend.
package render

import (
	"math"

	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/annotate"
	"github.com/pathotrack/pathotrack/layout"
)

const (
	// vertical pixels per terminal
	yStep = 12

	// horizontal padding before the root
	xPad = 10

	// assume that each character has 6 pixels wide
	charWidth = 6

	// unit of the branch lengths stored in a tree
	lenUnit = 1_000_000
)

type node struct {
	x    float64
	y    int
	topY int
	botY int

	id    int
	label string
	color annotate.Color

	anc  *node
	desc []*node
}

// A Tree is the geometric layout of a tree drawing.
type Tree struct {
	height  int
	maxX    float64
	labelSz int
	root    *node
}

// New lays out a tree for drawing.
// Tip labels and colors are taken
// from the given annotations;
// a tip without an annotation keeps its name in the tree.
// The xStep parameter is the number of horizontal pixels
// per branch length unit.
func New(t *timetree.Tree, tips annotate.Tips, xStep float64) *Tree {
	maxSz := 0
	var root *node
	ids := make(map[int]*node)
	for _, id := range t.Nodes() {
		var anc *node
		p := t.Parent(id)
		if p >= 0 {
			anc = ids[p]
		}

		n := &node{
			id:    id,
			color: annotate.Default,
			anc:   anc,
		}
		if t.IsTerm(id) {
			tax := t.Taxon(id)
			n.label = tax
			if tip, ok := tips[tax]; ok {
				n.label = tip.Label
				n.color = tip.Color
			}
		}
		if anc == nil {
			root = n
		} else {
			anc.desc = append(anc.desc, n)
		}
		ids[id] = n
		if len(n.label) > maxSz {
			maxSz = len(n.label)
		}
	}

	rt := &Tree{root: root}
	rootAge := float64(t.Age(t.Root())) / lenUnit
	rt.prepare(root, t, rootAge, xStep)
	rt.height = rt.height * yStep
	rt.labelSz = maxSz

	return rt
}

func (rt *Tree) prepare(n *node, t *timetree.Tree, rootAge, xStep float64) {
	age := float64(t.Age(n.id)) / lenUnit
	n.x = (rootAge-age)*xStep + xPad
	if rt.maxX < n.x {
		rt.maxX = n.x
	}

	if n.desc == nil {
		n.y = rt.height*yStep + 5
		rt.height += 1
		return
	}

	botY := 0
	topY := math.MaxInt
	for _, d := range n.desc {
		rt.prepare(d, t, rootAge, xStep)
		if d.y < topY {
			topY = d.y
		}
		if d.y > botY {
			botY = d.y
		}
	}
	n.topY = topY
	n.botY = botY
	n.y = topY + (botY-topY)/2
}

// Bounds returns the bounding box of the drawing,
// anchored at the origin.
func (rt *Tree) Bounds() layout.Box {
	return layout.Box{
		X1: 0,
		Y1: 0,
		X2: rt.maxX + float64(rt.labelSz*charWidth),
		Y2: float64(rt.height + 5),
	}
}
