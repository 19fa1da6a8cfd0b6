// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package annotate decorates the tips of a tree
// with display labels and category colors
// taken from the isolate metadata.
//
// The tree itself is never modified:
// annotations are kept in a side table
// keyed by the tip name,
// and consumed by the rendering backends.
package annotate

import (
	"strings"

	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/isolate"
	"github.com/pathotrack/pathotrack/treefilter"
)

// A Color is an RGB triple
// with channel values in the range [0, 1].
type Color struct {
	R float64
	G float64
	B float64
}

// Tip category colors.
var (
	// Environment is used for isolates
	// with an environmental or food attribute package.
	Environment = Color{R: 0.3, G: 0.3, B: 0.9}

	// Clinical is used for isolates
	// with a clinical or host attribute package.
	Clinical = Color{R: 0.9, G: 0.3, B: 0.3}

	// Default is used for any other isolate.
	Default = Color{R: 0.1, G: 0.1, B: 0.1}
)

// A Tip is the decoration of a single tree tip.
type Tip struct {
	// Label is the display name of the tip,
	// the label field of the isolate metadata.
	// It is empty when the isolate has no label.
	Label string

	// Color is the category color of the tip.
	Color Color
}

// Tips is a set of tip decorations
// keyed by the tip name used in the tree.
type Tips map[string]Tip

// Tree builds the decorations for every tip of a tree
// from the isolate metadata index.
func Tree(t *timetree.Tree, ix *isolate.Index) Tips {
	tips := make(Tips)
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		tip := t.Taxon(id)
		acc := treefilter.Accession(tip)
		tips[tip] = Tip{
			Label: ix.Field(acc, isolate.Label),
			Color: categoryColor(ix.Field(acc, isolate.Package)),
		}
	}
	return tips
}

func categoryColor(pkg string) Color {
	pkg = strings.ToLower(pkg)
	if strings.Contains(pkg, "environmental") || strings.Contains(pkg, "food") {
		return Environment
	}
	if strings.Contains(pkg, "clinical") || strings.Contains(pkg, "host") {
		return Clinical
	}
	return Default
}
