// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package filter implements a command to select
// the trees of a downloaded result set
// by isolate collection date
// and new isolate membership.
package filter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/config"
	"github.com/pathotrack/pathotrack/isolate"
	"github.com/pathotrack/pathotrack/remote"
	"github.com/pathotrack/pathotrack/treefilter"
)

var Command = &command.Command{
	Usage: `filter [--config <file>]
	[--from <date>] [--to <date>] [--new]
	[--dir <path>] [-o|--output <path>]`,
	Short: "select trees by collection date and new isolates",
	Long: `
Command filter reads the trees of a downloaded result set and copies to the
output directory the trees that pass the active criteria. The original files
are never modified or deleted, so the command can be repeated with different
windows over the same download.

A tree passes the date criterion if any of its isolates was collected inside
the date window given with the flags --from and --to. Dates can be given in
MM/DD/YYYY or YYYY-MM-DD form; by default, the window is open on both ends.
An isolate without a recorded collection date is read by its creation date. An
isolate date that cannot be parsed is reported in the standard error and reads
as the epoch start.

If the flag --new is given, only trees that contain newly uploaded isolates
are kept; the listing of such trees is read from the first new isolates table
of the download.

The per-isolate metadata tables are copied into the output directory for
inspection, together with the cluster tables.

By default, the trees are read from the directory 'pathotrack-tmp' (the
default of the fetch command) and copied into 'pathotrack-out'; use the flags
--dir and --output, or -o, to set different directories.

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
var workDir string
var outDir string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&cfgFile, "config", "", "")
	c.Flags().StringVar(&fromFlag, "from", "", "")
	c.Flags().StringVar(&toFlag, "to", "", "")
	c.Flags().BoolVar(&newOnly, "new", false, "")
	c.Flags().StringVar(&workDir, "dir", "", "")
	c.Flags().StringVar(&outDir, "output", "", "")
	c.Flags().StringVar(&outDir, "o", "", "")
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
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}

	w, err := cfg.Window()
	if err != nil {
		return err
	}

	ix, metaFiles, err := readMetadata(cfg.WorkDir)
	if err != nil {
		return err
	}

	var newSet isolate.NewIsolates
	if cfg.NewOnly {
		newSet, err = readNewIsolates(cfg.WorkDir)
		if err != nil {
			return err
		}
	}

	f := &treefilter.Filter{
		Index:  ix,
		Window: w,
		New:    newSet,
		Warn:   c.Stderr(),
	}

	trees, err := treeFiles(cfg.WorkDir)
	if err != nil {
		return err
	}

	kept := 0
	for _, tf := range trees {
		acc := remote.TreeAccession(tf)
		t, err := readTree(tf, acc)
		if err != nil {
			return err
		}
		if !f.Passes(acc, t) {
			continue
		}
		dst := filepath.Join(cfg.OutDir, "SNP_trees", acc, filepath.Base(tf))
		if err := copyFile(tf, dst); err != nil {
			return err
		}
		kept++
	}

	for _, mf := range metaFiles {
		dst := filepath.Join(cfg.OutDir, "Metadata", filepath.Base(mf))
		if err := copyFile(mf, dst); err != nil {
			return err
		}
	}
	clusters, err := filepath.Glob(filepath.Join(cfg.WorkDir, "Clusters", "*.tsv"))
	if err != nil {
		return err
	}
	for _, cf := range clusters {
		dst := filepath.Join(cfg.OutDir, "Clusters", filepath.Base(cf))
		if err := copyFile(cf, dst); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.Stdout(), "%d of %d trees in %q\n", kept, len(trees), cfg.OutDir)
	return nil
}

// ReadMetadata builds the metadata index
// from the metadata tables of the work directory.
// Files are merged in lexicographic order,
// and an earlier file takes priority
// over any later file.
func readMetadata(workDir string) (*isolate.Index, []string, error) {
	files, err := filepath.Glob(filepath.Join(workDir, "Metadata", "*.metadata.tsv"))
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no metadata tables in %q", workDir)
	}

	ix := isolate.NewIndex()
	for _, name := range files {
		if err := readMetadataFile(ix, name); err != nil {
			return nil, nil, err
		}
	}
	return ix, files, nil
}

func readMetadataFile(ix *isolate.Index, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ix.ReadTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

// ReadNewIsolates reads the listing of trees
// with newly uploaded isolates.
// Only the first table found is consulted,
// even if several exist.
func readNewIsolates(workDir string) (isolate.NewIsolates, error) {
	files, err := filepath.Glob(filepath.Join(workDir, "Clusters", remote.NewIsolatesGlob))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no new isolates table in %q", workDir)
	}

	f, err := os.Open(files[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := isolate.ReadNewIsolates(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", files[0], err)
	}
	return n, nil
}

func treeFiles(workDir string) ([]string, error) {
	var trees []string
	root := filepath.Join(workDir, "SNP_trees")
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
		return nil, fmt.Errorf("no trees in %q: %v", workDir, err)
	}
	return trees, nil
}

func readTree(name, acc string) (*timetree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.Newick(f, acc, 0)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	names := c.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("while reading file %q: no trees in file", name)
	}
	return c.Tree(names[0]), nil
}

func copyFile(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		e := d.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if _, err := io.Copy(d, s); err != nil {
		return fmt.Errorf("while copying %q: %v", src, err)
	}
	return nil
}
