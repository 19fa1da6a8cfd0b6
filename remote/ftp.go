// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package remote

import (
	"fmt"
	"os"
	"path"
	"slices"
	"time"

	"github.com/jlaffaye/ftp"
)

// DefaultHost is the public FTP site
// of the surveillance repository.
const DefaultHost = "ftp.ncbi.nlm.nih.gov"

// Dial connects to the repository FTP site
// with an anonymous login.
// If host is empty,
// the default public site is used.
func Dial(host string) (Client, error) {
	if host == "" {
		host = DefaultHost
	}
	conn, err := ftp.Dial(host+":21", ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %q: %v", host, err)
	}
	if err := conn.Login("anonymous", "anonymous"); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("unable to login to %q: %v", host, err)
	}
	return &ftpClient{conn: conn}, nil
}

type ftpClient struct {
	conn *ftp.ServerConn
}

func (c *ftpClient) Dirs(dir string) ([]string, error) {
	entries, err := c.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list %q: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type != ftp.EntryTypeFolder && e.Type != ftp.EntryTypeLink {
			continue
		}
		names = append(names, e.Name)
	}
	slices.Sort(names)
	return names, nil
}

func (c *ftpClient) List(dir, glob string) ([]string, error) {
	entries, err := c.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list %q: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type != ftp.EntryTypeFile {
			continue
		}
		ok, err := path.Match(glob, e.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %v", glob, err)
		}
		if ok {
			names = append(names, e.Name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (c *ftpClient) Fetch(remote, local string) error {
	if _, err := os.Stat(local); err == nil {
		return nil
	}
	r, err := c.conn.Retr(remote)
	if err != nil {
		return fmt.Errorf("unable to fetch %q: %v", remote, err)
	}
	defer r.Close()

	return store(r, remote, local)
}

func (c *ftpClient) Close() error {
	return c.conn.Quit()
}
