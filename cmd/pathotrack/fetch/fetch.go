// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fetch implements a command to download
// the latest run of a result set
// from the surveillance repository.
package fetch

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/pathotrack/pathotrack/config"
	"github.com/pathotrack/pathotrack/remote"
)

var Command = &command.Command{
	Usage: `fetch [--config <file>] [--set <name>]
	[--host <host>] [--root <path>]
	[--max <number>] [--dir <path>]`,
	Short: "download the latest run of a result set",
	Long: `
Command fetch connects to the surveillance repository and downloads the latest
run of a result set: the per-isolate metadata tables, the cluster and new
isolate tables, and the tree files, keeping the remote directory layout in a
local work directory.

By default, the Listeria result set is downloaded. Use the flag --set to
download a different result set; the command ls prints the available names.

Files already present in the work directory are not transferred again, so an
interrupted download can be resumed by running the command again. Use the flag
--max to cap the number of tree files transferred in a run.

By default, the work directory is 'pathotrack-tmp'; use the flag --dir to set
a different directory.

The flag --config reads the run options from a YAML configuration file; any
other flag given overrides the file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var cfgFile string
var setName string
var host string
var root string
var workDir string
var maxTrees int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&cfgFile, "config", "", "")
	c.Flags().StringVar(&setName, "set", "", "")
	c.Flags().StringVar(&host, "host", "", "")
	c.Flags().StringVar(&root, "root", "", "")
	c.Flags().StringVar(&workDir, "dir", "", "")
	c.Flags().IntVar(&maxTrees, "max", 0, "")
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
	if setName != "" {
		cfg.ResultSet = setName
	}
	if host != "" {
		cfg.Host = host
	}
	if root != "" {
		cfg.Root = root
	}
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if maxTrees > 0 {
		cfg.MaxTrees = maxTrees
	}

	cl, err := remote.Dial(cfg.Host)
	if err != nil {
		return err
	}
	defer cl.Close()

	rs := remote.ResultSet{Root: cfg.Root, Name: cfg.ResultSet}
	n, err := remote.Fetch(cl, rs, cfg.WorkDir, cfg.MaxTrees)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%s: %d tree files in %q\n", cfg.ResultSet, n, cfg.WorkDir)
	return nil
}
