// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package remote_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pathotrack/pathotrack/remote"
)

// NewRepo builds a local repository tree
// with the layout of the remote site.
func newRepo(t testing.TB) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"Results/Listeria/latest_snps/Metadata/PDG000000001.244.metadata.tsv":                            "#target_acc\tlabel\nPDT000100001.1\tfoo\n",
		"Results/Listeria/latest_snps/Metadata/PDG000000001.244.amr.metadata.tsv":                        "#target_acc\tlabel\nPDT000100002.1\tbar\n",
		"Results/Listeria/latest_snps/Clusters/PDG000000001.244.new_isolates.tsv":                        "#PDS_acc\ttarget_acc\nPDS000012345.6\tPDT000100001.1\n",
		"Results/Listeria/latest_snps/SNP_trees/PDS000012345.6/PDS000012345.6.newick_tree.newick":        "(PDT000100001.1:2,PDT000100002.1:1);",
		"Results/Listeria/latest_snps/SNP_trees/PDS000099887.2/PDS000099887.2.newick_tree.newick":        "(PDT000100003.1:2,PDT000100004.1:1);",
		"Results/Salmonella/latest_snps/Metadata/PDG000000002.100.metadata.tsv":                          "#target_acc\tlabel\n",
		"Results/Salmonella/latest_snps/Clusters/PDG000000002.100.reference_target.cluster_list.tsv":     "#PDS_acc\tother\n",
		"Results/Salmonella/latest_snps/SNP_trees/PDS000055555.1/PDS000055555.1.newick_tree.newick":      "(A:1,B:1);",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("unable to create repo: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("unable to create repo: %v", err)
		}
	}
	return root
}

func TestSets(t *testing.T) {
	cl := remote.Local(newRepo(t))
	defer cl.Close()

	sets, err := remote.Sets(cl, "Results")
	if err != nil {
		t.Fatalf("unable to list result sets: %v", err)
	}
	want := []string{"Listeria", "Salmonella"}
	if !reflect.DeepEqual(sets, want) {
		t.Errorf("result sets: got %v, want %v", sets, want)
	}
}

func TestFetch(t *testing.T) {
	cl := remote.Local(newRepo(t))
	defer cl.Close()

	rs := remote.ResultSet{Root: "Results", Name: "Listeria"}
	local := t.TempDir()

	trees, err := remote.Fetch(cl, rs, local, 0)
	if err != nil {
		t.Fatalf("unable to fetch: %v", err)
	}
	if trees != 2 {
		t.Errorf("fetched trees: got %d, want 2", trees)
	}

	for _, n := range []string{
		"Metadata/PDG000000001.244.metadata.tsv",
		"Metadata/PDG000000001.244.amr.metadata.tsv",
		"Clusters/PDG000000001.244.new_isolates.tsv",
		"SNP_trees/PDS000012345.6/PDS000012345.6.newick_tree.newick",
		"SNP_trees/PDS000099887.2/PDS000099887.2.newick_tree.newick",
	} {
		if _, err := os.Stat(filepath.Join(local, filepath.FromSlash(n))); err != nil {
			t.Errorf("file %s: %v", n, err)
		}
	}
}

func TestFetchSkipsPresent(t *testing.T) {
	cl := remote.Local(newRepo(t))
	defer cl.Close()

	rs := remote.ResultSet{Root: "Results", Name: "Listeria"}
	local := t.TempDir()

	name := filepath.Join(local, "Metadata", "PDG000000001.244.metadata.tsv")
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatalf("unable to create local dir: %v", err)
	}
	if err := os.WriteFile(name, []byte("already here\n"), 0644); err != nil {
		t.Fatalf("unable to create local file: %v", err)
	}

	if _, err := remote.Fetch(cl, rs, local, 0); err != nil {
		t.Fatalf("unable to fetch: %v", err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read local file: %v", err)
	}
	if string(data) != "already here\n" {
		t.Errorf("present file was overwritten: got %q", data)
	}
}

func TestFetchCap(t *testing.T) {
	cl := remote.Local(newRepo(t))
	defer cl.Close()

	rs := remote.ResultSet{Root: "Results", Name: "Listeria"}
	local := t.TempDir()

	trees, err := remote.Fetch(cl, rs, local, 1)
	if err != nil {
		t.Fatalf("unable to fetch: %v", err)
	}
	if trees != 1 {
		t.Errorf("fetched trees: got %d, want 1", trees)
	}
}

func TestFetchUnknownSet(t *testing.T) {
	cl := remote.Local(newRepo(t))
	defer cl.Close()

	rs := remote.ResultSet{Root: "Results", Name: "Vibrio"}
	if _, err := remote.Fetch(cl, rs, t.TempDir(), 0); err == nil {
		t.Errorf("unknown result set: expecting error")
	}
}

func TestTreeAccession(t *testing.T) {
	tests := map[string]string{
		"PDS000012345.6.newick_tree.newick": "PDS000012345.6",
		"SNP_trees/PDS000012345.6/PDS000012345.6.newick_tree.newick": "PDS000012345.6",
		"plain-name": "plain-name",
	}
	for name, want := range tests {
		if g := remote.TreeAccession(name); g != want {
			t.Errorf("file %q: got %q, want %q", name, g, want)
		}
	}
}
