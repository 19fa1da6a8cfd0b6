// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package config holds the configuration of a run.
//
// The configuration is resolved once at startup
// from the defaults,
// an optional YAML file,
// and the command flags,
// and is then passed read-only to every component.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pathotrack/pathotrack/dates"
	"github.com/pathotrack/pathotrack/remote"
	"github.com/pathotrack/pathotrack/treefilter"
	"gopkg.in/yaml.v3"
)

// A Config is the configuration of a run.
type Config struct {
	// ResultSet is the name of the result set to process.
	ResultSet string `yaml:"resultset"`

	// Host is the address of the repository FTP site.
	Host string `yaml:"host"`

	// Root is the repository directory with the result sets.
	Root string `yaml:"root"`

	// From and To are the bounds of the collection date window,
	// in MM/DD/YYYY or YYYY-MM-DD form.
	// An empty From means the epoch start;
	// an empty To means today.
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// NewOnly restricts the run
	// to trees with newly uploaded isolates.
	NewOnly bool `yaml:"newonly"`

	// MaxTrees caps the number of tree files
	// transferred in a run.
	// Zero means no cap.
	MaxTrees int `yaml:"maxtrees"`

	// WorkDir is the directory for the downloaded artifacts.
	WorkDir string `yaml:"workdir"`

	// OutDir is the directory for the filtered trees
	// and the report.
	OutDir string `yaml:"outdir"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ResultSet: "Listeria",
		Host:      remote.DefaultHost,
		Root:      remote.DefaultRoot,
		WorkDir:   "pathotrack-tmp",
		OutDir:    "pathotrack-out",
	}
}

// Read reads a configuration from a YAML file,
// on top of the defaults.
//
// Here is an example file:
//
//	resultset: Listeria
//	from: 2021-01-01
//	to: 2021-12-31
//	newonly: true
//	maxtrees: 100
//	workdir: tmp
//	outdir: out
func Read(name string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("on file %q: %v", name, err)
	}
	return c, nil
}

// Window resolves the date window of the configuration.
func (c Config) Window() (treefilter.Window, error) {
	w := treefilter.Window{
		From: dates.Sentinel,
		To:   today(),
	}
	if c.From != "" {
		d, err := dates.Parse(c.From)
		if err != nil {
			return treefilter.Window{}, fmt.Errorf("invalid from date: %v", err)
		}
		w.From = d
	}
	if c.To != "" {
		d, err := dates.Parse(c.To)
		if err != nil {
			return treefilter.Window{}, fmt.Errorf("invalid to date: %v", err)
		}
		w.To = d
	}
	return w, nil
}

func today() dates.Date {
	now := time.Now()
	return dates.Date{
		Year:  now.Year(),
		Month: int(now.Month()),
		Day:   now.Day(),
	}
}
