// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package report composes the paginated tree report:
// a title page with the run parameters and the color legend,
// followed by one page per surviving tree.
package report

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"time"

	"github.com/pathotrack/pathotrack/annotate"
	"github.com/pathotrack/pathotrack/isolate"
	"github.com/pathotrack/pathotrack/layout"
	"github.com/pathotrack/pathotrack/render"
	"github.com/pathotrack/pathotrack/treefilter"
	"gonum.org/v1/gonum/stat"

	// Register the Liberation fonts in font.DefaultCache.
	_ "gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Info is the run information
// printed on the title page of a report.
type Info struct {
	// ResultSet is the name of the result set.
	ResultSet string

	// Window is the collection date filter of the run.
	Window treefilter.Window

	// NewOnly indicates that the run was restricted
	// to trees with newly uploaded isolates.
	NewOnly bool

	// Years are the collection years
	// of the isolates included in the report,
	// used for the date summary.
	Years []float64

	// Trees is the number of trees in the report.
	Trees int
}

// A Report is a paginated tree report document.
type Report struct {
	geo   layout.Geometry
	pdf   *vgpdf.Canvas
	pages int
}

// New creates an empty report
// with the given page geometry.
func New(geo layout.Geometry) *Report {
	return &Report{
		geo: geo,
		pdf: vgpdf.New(vg.Length(geo.Width), vg.Length(geo.Height)),
	}
}

// TitlePage writes the title page of the report:
// the title,
// the result set name,
// the active date filters,
// the color legend,
// and the generation timestamp.
func (r *Report) TitlePage(info Info) {
	c := r.page()

	y := r.geo.Height - r.geo.Margin - 40
	r.text(c, r.geo.Width/2, y, 24, draw.XCenter, color.Black, "SNP tree report")
	y -= 40
	r.text(c, r.geo.Width/2, y, 14, draw.XCenter, color.Black, fmt.Sprintf("result set: %s", info.ResultSet))
	y -= 20
	r.text(c, r.geo.Width/2, y, 12, draw.XCenter, color.Black,
		fmt.Sprintf("from: %s    to: %s", info.Window.From, info.Window.To))
	if info.NewOnly {
		y -= 20
		r.text(c, r.geo.Width/2, y, 12, draw.XCenter, color.Black, "only trees with newly uploaded isolates")
	}
	y -= 20
	r.text(c, r.geo.Width/2, y, 12, draw.XCenter, color.Black, fmt.Sprintf("trees: %d", info.Trees))

	y -= 30
	if s := dateSummary(info.Years); s != "" {
		r.text(c, r.geo.Width/2, y, 12, draw.XCenter, color.Black, s)
	}

	r.legend(c, y-80)

	r.text(c, r.geo.Width/2, r.geo.Margin+20, 10, draw.XCenter, color.Black,
		fmt.Sprintf("generated: %s", time.Now().Format(time.RFC3339)))
}

// TreePage adds a page with a tree drawing,
// headed by the tree accession
// and captioned with the public address of the result set.
func (r *Report) TreePage(acc string, rt *render.Tree) error {
	placed := r.geo.Place(rt.Bounds())
	if placed.Width() <= 0 || placed.Height() <= 0 {
		return fmt.Errorf("tree %s: unable to place image on page", acc)
	}

	c := r.page()
	r.text(c, r.geo.Width/2, r.geo.Height-r.geo.Margin-20, 18, draw.XCenter, color.Black, acc)
	rt.Draw(c, placed)
	r.text(c, r.geo.Width/2, r.geo.Margin, 9, draw.XCenter, color.Gray{Y: 96}, isolate.BrowserURL(acc))
	return nil
}

// Write writes the report document to a file.
func (r *Report) Write(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if _, err := r.pdf.WriteTo(f); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

func (r *Report) page() draw.Canvas {
	if r.pages > 0 {
		r.pdf.NextPage()
	}
	r.pages++
	return draw.New(r.pdf)
}

// A bordered legend box
// with the color swatches of the tip categories.
func (r *Report) legend(c draw.Canvas, top float64) {
	const (
		width  = 220
		height = 60
	)
	x := (r.geo.Width - width) / 2
	y := top - height

	sty := draw.LineStyle{
		Color: color.Black,
		Width: vg.Points(1),
	}
	c.StrokeLines(sty, []vg.Point{
		{X: vg.Length(x), Y: vg.Length(y)},
		{X: vg.Length(x + width), Y: vg.Length(y)},
		{X: vg.Length(x + width), Y: vg.Length(y + height)},
		{X: vg.Length(x), Y: vg.Length(y + height)},
		{X: vg.Length(x), Y: vg.Length(y)},
	})

	r.swatch(c, x+15, y+height-25, annotate.Environment, "Environmental or Food")
	r.swatch(c, x+15, y+height-45, annotate.Clinical, "Clinical")
}

func (r *Report) swatch(c draw.Canvas, x, y float64, col annotate.Color, label string) {
	const size = 10
	sw := color.RGBA{
		R: uint8(col.R*255 + 0.5),
		G: uint8(col.G*255 + 0.5),
		B: uint8(col.B*255 + 0.5),
		A: 255,
	}
	c.FillPolygon(sw, []vg.Point{
		{X: vg.Length(x), Y: vg.Length(y)},
		{X: vg.Length(x + size), Y: vg.Length(y)},
		{X: vg.Length(x + size), Y: vg.Length(y + size)},
		{X: vg.Length(x), Y: vg.Length(y + size)},
	})
	r.text(c, x+size+8, y+1, 10, draw.XLeft, color.Black, label)
}

func (r *Report) text(c draw.Canvas, x, y, size float64, align draw.XAlignment, col color.Color, s string) {
	sty := text.Style{
		Color: col,
		Font: font.Font{
			Typeface: "Liberation",
			Variant:  "Sans",
			Size:     vg.Length(size),
		},
		XAlign:  align,
		YAlign:  draw.YBottom,
		Handler: text.Plain{Fonts: font.DefaultCache},
	}
	c.FillText(sty, vg.Point{X: vg.Length(x), Y: vg.Length(y)}, s)
}

// DateSummary is a short text
// with the median and quartiles
// of the isolate collection years.
func dateSummary(years []float64) string {
	if len(years) == 0 {
		return ""
	}
	ys := slices.Clone(years)
	slices.Sort(ys)
	weights := make([]float64, len(ys))
	for i := range weights {
		weights[i] = 1
	}

	med := stat.Quantile(0.5, stat.Empirical, ys, weights)
	q1 := stat.Quantile(0.25, stat.Empirical, ys, weights)
	q3 := stat.Quantile(0.75, stat.Empirical, ys, weights)
	return fmt.Sprintf("collection years: median %.0f, quartiles %.0f to %.0f", med, q1, q3)
}
