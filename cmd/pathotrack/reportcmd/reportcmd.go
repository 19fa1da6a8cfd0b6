// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reportcmd implements a command to render
// the filtered trees of a result set
// as a paginated report.
package reportcmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/annotate"
	"github.com/pathotrack/pathotrack/config"
	"github.com/pathotrack/pathotrack/isolate"
	"github.com/pathotrack/pathotrack/layout"
	"github.com/pathotrack/pathotrack/remote"
	"github.com/pathotrack/pathotrack/render"
	"github.com/pathotrack/pathotrack/report"
	"github.com/pathotrack/pathotrack/treefilter"
)

var Command = &command.Command{
	Usage: `report [--config <file>]
	[--from <date>] [--to <date>] [--new]
	[--step <value>]
	[--dir <path>] [-o|--output <file>]`,
	Short: "render the filtered trees as a paginated report",
	Long: `
Command report reads the trees selected by the filter command and renders a
paginated report: a title page with the run parameters and the color legend,
followed by one page per tree. Each tree page carries the tree accession as a
heading and the public address of the result set as a caption.

On every tree, the tips are labeled with the isolate labels from the metadata
tables, and colored by attribute package: blue for environmental or food
isolates, red for clinical or host isolates. A standalone SVG image of each
tree is also written into the 'images' directory of the report directory.

Trees with a zero root height are unresolved and are left out of the report.

The flags --from, --to, and --new are printed on the title page and should
match the flags given to the filter command.

By default, 10 pixel units are used per branch length unit in the tree
drawings; use the flag --step to set a different value.

By default, the trees are read from the directory 'pathotrack-out' (the
default of the filter command) and the report is written as 'report.pdf' in
that directory; use the flags --dir and --output, or -o, to set a different
directory and file.

The flag --config reads the run options from a YAML configuration file; any
other flag given overrides the file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var cfgFile string
var fromFlag string
var toFlag string
var newOnly bool
var stepX float64
var outDir string
var outFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&cfgFile, "config", "", "")
	c.Flags().StringVar(&fromFlag, "from", "", "")
	c.Flags().StringVar(&toFlag, "to", "", "")
	c.Flags().BoolVar(&newOnly, "new", false, "")
	c.Flags().Float64Var(&stepX, "step", 10, "")
	c.Flags().StringVar(&outDir, "dir", "", "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
}

type treePage struct {
	acc  string
	tree *render.Tree
}

func run(c *command.Command, args []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.Read(cfgFile)
		if err != nil {
			return err
		}
	}
	if fromFlag != "" {
		cfg.From = fromFlag
	}
	if toFlag != "" {
		cfg.To = toFlag
	}
	if newOnly {
		cfg.NewOnly = true
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if outFile == "" {
		outFile = filepath.Join(cfg.OutDir, "report.pdf")
	}

	w, err := cfg.Window()
	if err != nil {
		return err
	}

	ix, err := readMetadata(cfg.OutDir)
	if err != nil {
		return err
	}

	trees, err := treeFiles(cfg.OutDir)
	if err != nil {
		return err
	}

	var pages []treePage
	var years []float64
	for _, tf := range trees {
		acc := remote.TreeAccession(tf)
		data, err := os.ReadFile(tf)
		if err != nil {
			return err
		}
		// degeneracy is decided on the newick text,
		// before any clamping by the tree reader
		if treefilter.Degenerate(data) {
			fmt.Fprintf(c.Stderr(), "warning: tree %s: zero root height, skipped\n", acc)
			continue
		}
		t, err := readTree(data, tf, acc)
		if err != nil {
			return err
		}

		rt := render.New(t, annotate.Tree(t, ix), stepX)
		if err := writeSVG(cfg.OutDir, acc, rt); err != nil {
			return err
		}
		pages = append(pages, treePage{acc: acc, tree: rt})
		years = append(years, tipYears(t, ix, w)...)
	}

	r := report.New(layout.Letter())
	r.TitlePage(report.Info{
		ResultSet: cfg.ResultSet,
		Window:    w,
		NewOnly:   cfg.NewOnly,
		Years:     years,
		Trees:     len(pages),
	})
	for _, p := range pages {
		if err := r.TreePage(p.acc, p.tree); err != nil {
			return err
		}
	}

	if err := r.Write(outFile); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%d trees in %q\n", len(pages), outFile)
	return nil
}

// TipYears returns the collection years
// of the tree isolates with a date inside the window,
// used for the date summary of the title page.
func tipYears(t *timetree.Tree, ix *isolate.Index, w treefilter.Window) []float64 {
	var years []float64
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		d, warn := treefilter.TipDate(ix, t.Taxon(id))
		if warn != nil {
			continue
		}
		if !w.Contains(d) {
			continue
		}
		years = append(years, float64(d.Year))
	}
	return years
}

func writeSVG(dir, acc string, rt *render.Tree) (err error) {
	name := filepath.Join(dir, "images", acc+".svg")
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
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

	bw := bufio.NewWriter(f)
	if err := rt.SVG(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

func readMetadata(dir string) (*isolate.Index, error) {
	files, err := filepath.Glob(filepath.Join(dir, "Metadata", "*.metadata.tsv"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no metadata tables in %q", dir)
	}

	ix := isolate.NewIndex()
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		err = ix.ReadTSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
	}
	return ix, nil
}

func treeFiles(dir string) ([]string, error) {
	var trees []string
	root := filepath.Join(dir, "SNP_trees")
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(p, remote.TreeSuffix) {
			trees = append(trees, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("no trees in %q: %v", dir, err)
	}
	return trees, nil
}

func readTree(data []byte, name, acc string) (*timetree.Tree, error) {
	c, err := timetree.Newick(bytes.NewReader(data), acc, 0)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	names := c.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("while reading file %q: no trees in file", name)
	}
	return c.Tree(names[0]), nil
}
