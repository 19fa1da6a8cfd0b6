// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/annotate"
	"github.com/pathotrack/pathotrack/render"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func newTree(t testing.TB) (*timetree.Tree, annotate.Tips) {
	t.Helper()

	c, err := timetree.Newick(strings.NewReader("(PDT000100001.1:2,PDT000100002.1:1);"), "test", 0)
	if err != nil {
		t.Fatalf("unable to parse newick: %v", err)
	}
	tr := c.Tree(c.Names()[0])

	tips := make(annotate.Tips)
	for _, tax := range tr.Terms() {
		tip := annotate.Tip{Label: "iso-clinical", Color: annotate.Clinical}
		if strings.EqualFold(strings.Trim(tax, `'"`), "PDT000100002.1") {
			tip = annotate.Tip{Label: "iso-env", Color: annotate.Environment}
		}
		tips[tax] = tip
	}
	return tr, tips
}

func TestBounds(t *testing.T) {
	tr, tips := newTree(t)
	rt := render.New(tr, tips, 10)

	b := rt.Bounds()
	if b.X1 != 0 || b.Y1 != 0 {
		t.Errorf("bounds: got %+v, want an origin anchored box", b)
	}

	// two terminals, 12 pixels each, plus the bottom pad
	if b.Y2 != 29 {
		t.Errorf("bounds height: got %g, want 29", b.Y2)
	}

	// deepest tip at (root age)*step + pad,
	// plus the longest label
	want := 30 + float64(len("iso-clinical")*6)
	if b.X2 != want {
		t.Errorf("bounds width: got %g, want %g", b.X2, want)
	}
}

func TestSVG(t *testing.T) {
	tr, tips := newTree(t)
	rt := render.New(tr, tips, 10)

	var buf bytes.Buffer
	if err := rt.SVG(&buf); err != nil {
		t.Fatalf("unable to write SVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<svg",
		"iso-clinical",
		"iso-env",
		"rgb(90%,30%,30%)",
		"rgb(30%,30%,90%)",
		"<line",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output: expecting %q", want)
		}
	}
}

func TestDraw(t *testing.T) {
	tr, tips := newTree(t)
	rt := render.New(tr, tips, 10)

	img := vgimg.New(vg.Points(612), vg.Points(792))
	c := draw.New(img)

	b := rt.Bounds()
	b.X1 += 36
	b.X2 += 36
	b.Y1 += 36
	b.Y2 += 36
	rt.Draw(c, b)
}
