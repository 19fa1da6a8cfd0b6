// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Pathotrack is a tool to retrieve, filter, and report
// SNP trees published by a pathogen surveillance pipeline.
package main

import (
	"github.com/js-arias/command"
	"github.com/pathotrack/pathotrack/cmd/pathotrack/fetch"
	"github.com/pathotrack/pathotrack/cmd/pathotrack/filter"
	"github.com/pathotrack/pathotrack/cmd/pathotrack/ls"
	"github.com/pathotrack/pathotrack/cmd/pathotrack/reportcmd"
)

var app = &command.Command{
	Usage: "pathotrack <command> [<argument>...]",
	Short: "a tool to retrieve and filter pathogen surveillance trees",
}

func init() {
	app.Add(ls.Command)
	app.Add(fetch.Command)
	app.Add(filter.Command)
	app.Add(reportcmd.Command)
}

func main() {
	app.Main()
}
