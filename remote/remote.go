// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package remote retrieves the published artifacts
// of a surveillance result set
// from a remote repository.
//
// The repository is accessed through a narrow client interface,
// with a driver for the public FTP site
// and a driver for a local directory tree
// (used for tests and offline re-runs).
package remote

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
)

// A Client is a connection to a repository
// with a hierarchical namespace.
// Remote paths always use forward slashes.
type Client interface {
	// Dirs returns the names of the sub-directories
	// of a remote directory.
	Dirs(dir string) ([]string, error)

	// List returns the names of the files
	// in a remote directory
	// that match a glob pattern.
	List(dir, glob string) ([]string, error)

	// Fetch copies a remote file to a local path.
	// A file already present at the local path
	// is kept as is,
	// so an interrupted run can be repeated
	// without transferring everything again.
	Fetch(remote, local string) error

	// Close releases the connection.
	Close() error
}

// Local returns a client that reads a local directory tree
// using the same layout as the remote repository.
func Local(root string) Client {
	return dirClient(root)
}

type dirClient string

func (d dirClient) local(dir string) string {
	return filepath.Join(string(d), filepath.FromSlash(dir))
}

func (d dirClient) Dirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(d.local(dir))
	if err != nil {
		return nil, fmt.Errorf("unable to list %q: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (d dirClient) List(dir, glob string) ([]string, error) {
	entries, err := os.ReadDir(d.local(dir))
	if err != nil {
		return nil, fmt.Errorf("unable to list %q: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := path.Match(glob, e.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %v", glob, err)
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (d dirClient) Fetch(remote, local string) error {
	if _, err := os.Stat(local); err == nil {
		return nil
	}
	src, err := os.Open(d.local(remote))
	if err != nil {
		return fmt.Errorf("unable to fetch %q: %v", remote, err)
	}
	defer src.Close()

	return store(src, remote, local)
}

func (d dirClient) Close() error {
	return nil
}

// Store writes the content of a fetched file
// to its local path.
func store(r io.Reader, remote, local string) (err error) {
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return fmt.Errorf("unable to fetch %q: %v", remote, err)
	}
	f, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("unable to fetch %q: %v", remote, err)
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("while fetching %q: %v", remote, err)
	}
	return nil
}
