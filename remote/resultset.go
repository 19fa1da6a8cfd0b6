// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package remote

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// DefaultRoot is the repository directory
// with the published result sets.
const DefaultRoot = "/pathogen/Results"

// File name patterns of the artifacts of a result set.
const (
	// MetadataGlob matches the per-isolate metadata tables.
	MetadataGlob = "*.metadata.tsv"

	// ClusterGlob matches the cluster and distance tables.
	ClusterGlob = "*.tsv"

	// NewIsolatesGlob matches the listing of trees
	// with newly uploaded isolates.
	NewIsolatesGlob = "*.new_isolates.tsv"

	// TreeSuffix is the suffix of a tree file.
	TreeSuffix = ".newick_tree.newick"
)

// A ResultSet locates the latest run of a result set
// inside the repository.
type ResultSet struct {
	// Root is the repository directory with the result sets.
	// If empty,
	// DefaultRoot is used.
	Root string

	// Name is the name of the result set
	// (usually a pathogen taxon).
	Name string
}

func (rs ResultSet) root() string {
	if rs.Root == "" {
		return DefaultRoot
	}
	return rs.Root
}

// Path returns the remote directory
// of the latest run of the result set.
func (rs ResultSet) Path() string {
	return path.Join(rs.root(), rs.Name, "latest_snps")
}

// MetadataDir returns the remote directory
// with the metadata tables.
func (rs ResultSet) MetadataDir() string {
	return path.Join(rs.Path(), "Metadata")
}

// ClustersDir returns the remote directory
// with the cluster and new isolate tables.
func (rs ResultSet) ClustersDir() string {
	return path.Join(rs.Path(), "Clusters")
}

// TreesDir returns the remote directory
// with the per-tree sub-directories.
func (rs ResultSet) TreesDir() string {
	return path.Join(rs.Path(), "SNP_trees")
}

// Sets returns the result sets available
// under a repository root.
func Sets(cl Client, root string) ([]string, error) {
	if root == "" {
		root = DefaultRoot
	}
	return cl.Dirs(root)
}

// TreeAccession returns the accession of a tree
// from its file name.
func TreeAccession(name string) string {
	return strings.TrimSuffix(filepath.Base(name), TreeSuffix)
}

// Fetch downloads the artifacts of a result set
// into a local directory
// that mirrors the remote layout:
// the metadata tables,
// the cluster tables,
// and up to maxTrees tree files
// (all of them if maxTrees is zero or negative).
// It returns the number of tree files
// found within the cap.
//
// Files already present in the local directory
// are not transferred again.
func Fetch(cl Client, rs ResultSet, localRoot string, maxTrees int) (int, error) {
	meta, err := cl.List(rs.MetadataDir(), MetadataGlob)
	if err != nil {
		return 0, fmt.Errorf("result set %q: %v: the result set name may be wrong", rs.Name, err)
	}
	for _, n := range meta {
		remote := path.Join(rs.MetadataDir(), n)
		local := filepath.Join(localRoot, "Metadata", n)
		if err := cl.Fetch(remote, local); err != nil {
			return 0, err
		}
	}

	clusters, err := cl.List(rs.ClustersDir(), ClusterGlob)
	if err != nil {
		return 0, err
	}
	for _, n := range clusters {
		remote := path.Join(rs.ClustersDir(), n)
		local := filepath.Join(localRoot, "Clusters", n)
		if err := cl.Fetch(remote, local); err != nil {
			return 0, err
		}
	}

	dirs, err := cl.Dirs(rs.TreesDir())
	if err != nil {
		return 0, err
	}
	trees := 0
	for _, d := range dirs {
		if maxTrees > 0 && trees >= maxTrees {
			break
		}
		remoteDir := path.Join(rs.TreesDir(), d)
		files, err := cl.List(remoteDir, "*"+TreeSuffix)
		if err != nil {
			return 0, err
		}
		for _, n := range files {
			if maxTrees > 0 && trees >= maxTrees {
				break
			}
			remote := path.Join(remoteDir, n)
			local := filepath.Join(localRoot, "SNP_trees", d, n)
			if err := cl.Fetch(remote, local); err != nil {
				return 0, err
			}
			trees++
		}
	}
	return trees, nil
}
