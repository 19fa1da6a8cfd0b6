// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ls implements a command to list
// the result sets available on the repository.
package ls

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/pathotrack/pathotrack/remote"
)

var Command = &command.Command{
	Usage: "ls [--host <host>] [--root <path>]",
	Short: "list the result sets available on the repository",
	Long: `
Command ls connects to the surveillance repository and prints the names of the
available result sets in the standard output. Each result set holds the
pipeline outputs for one pathogen species or group.

By default, the public repository site is used. Use the flag --host to connect
to a different site, and the flag --root to read the result sets from a
different repository directory.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var host string
var root string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&host, "host", "", "")
	c.Flags().StringVar(&root, "root", "", "")
}

func run(c *command.Command, args []string) error {
	cl, err := remote.Dial(host)
	if err != nil {
		return err
	}
	defer cl.Close()

	sets, err := remote.Sets(cl, root)
	if err != nil {
		return err
	}
	for _, s := range sets {
		fmt.Fprintf(c.Stdout(), "%s\n", s)
	}
	return nil
}
