// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isolate_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pathotrack/pathotrack/isolate"
)

var fileA = `#target_acc	label	collection_date	attribute_package
PDT000100001.1	2021CL-00123	2021-06-15	clinical
PDT000100002.1	2021EN-00124		environmental/food
PDT000100003.1	Foo	2019
`

var fileB = `target_acc	label	collection_date	target_creation_date
PDT000100002.1	OTHER-NAME	6/20/2021	2021-06-21
PDT000100003.1	Bar	2020	2019-02-03
PDT000100004.1	2021HS-00125	missing	2021-07-01
`

func TestIndex(t *testing.T) {
	ix := newIndex(t)

	accs := []string{
		"PDT000100001.1",
		"PDT000100002.1",
		"PDT000100003.1",
		"PDT000100004.1",
	}
	if g := ix.Accessions(); !reflect.DeepEqual(g, accs) {
		t.Errorf("accessions: got %v, want %v", g, accs)
	}

	fields := map[string]map[string]string{
		"PDT000100001.1": {
			isolate.Label:          "2021CL-00123",
			isolate.CollectionDate: "2021-06-15",
			isolate.Package:        "clinical",
		},
		// empty fields in the first file
		// are filled from the second file
		"PDT000100002.1": {
			isolate.Label:          "2021EN-00124",
			isolate.CollectionDate: "6/20/2021",
			isolate.CreationDate:   "2021-06-21",
			isolate.Package:        "environmental/food",
		},
		// first file wins on conflict
		"PDT000100003.1": {
			isolate.Label:          "Foo",
			isolate.CollectionDate: "2019",
			isolate.CreationDate:   "2019-02-03",
		},
		"PDT000100004.1": {
			isolate.Label:          "2021HS-00125",
			isolate.CollectionDate: "missing",
			isolate.CreationDate:   "2021-07-01",
		},
	}
	for acc, want := range fields {
		for f, v := range want {
			if g := ix.Field(acc, f); g != v {
				t.Errorf("accession %s: field %s: got %q, want %q", acc, f, g, v)
			}
		}
	}

	// unknown accessions and fields read as empty
	if g := ix.Field("PDT000999999.1", isolate.Label); g != "" {
		t.Errorf("unknown accession: got %q, want empty", g)
	}
	if g := ix.Field("PDT000100001.1", "no_such_field"); g != "" {
		t.Errorf("unknown field: got %q, want empty", g)
	}

	// case insensitive accession match
	if g := ix.Field("pdt000100001.1", isolate.Label); g != "2021CL-00123" {
		t.Errorf("lower case accession: got %q, want %q", g, "2021CL-00123")
	}
}

func TestIndexFileOrder(t *testing.T) {
	// reversed processing order reverses the winner
	ix := isolate.NewIndex()
	for _, f := range []string{fileB, fileA} {
		if err := ix.ReadTSV(strings.NewReader(f)); err != nil {
			t.Fatalf("unable to read metadata: %v", err)
		}
	}
	if g := ix.Field("PDT000100003.1", isolate.Label); g != "Bar" {
		t.Errorf("reversed order: got label %q, want %q", g, "Bar")
	}
}

func TestIndexShortRows(t *testing.T) {
	// rows with fewer columns than the header
	// read the absent fields as empty
	file := `#target_acc	label	collection_date	attribute_package
PDT000100001.1	2021CL-00123	2021-06-15
PDT000100002.1
`
	ix := isolate.NewIndex()
	if err := ix.ReadTSV(strings.NewReader(file)); err != nil {
		t.Fatalf("unable to read metadata: %v", err)
	}

	if g := ix.Field("PDT000100001.1", isolate.CollectionDate); g != "2021-06-15" {
		t.Errorf("short row: got collection date %q, want %q", g, "2021-06-15")
	}
	if g := ix.Field("PDT000100001.1", isolate.Package); g != "" {
		t.Errorf("short row: got package %q, want empty", g)
	}
	if g, w := ix.Accessions(), []string{"PDT000100001.1", "PDT000100002.1"}; !reflect.DeepEqual(g, w) {
		t.Errorf("accessions: got %v, want %v", g, w)
	}
}

func TestIndexNoAccession(t *testing.T) {
	bad := "label\tcollection_date\nFoo\t2021-06-15\n"
	ix := isolate.NewIndex()
	if err := ix.ReadTSV(strings.NewReader(bad)); err == nil {
		t.Errorf("expecting error for a file without %q", isolate.Accession)
	}
}

func TestNewIsolates(t *testing.T) {
	file := `#PDS_acc	target_acc
PDS000012345.6	PDT000100001.1
PDS000012345.6	PDT000100007.1
PDS000099887.2	PDT000100019.1
`
	n, err := isolate.ReadNewIsolates(strings.NewReader(file))
	if err != nil {
		t.Fatalf("unable to read new isolates: %v", err)
	}

	for _, acc := range []string{"PDS000012345.6", "PDS000099887.2"} {
		if !n.Has(acc) {
			t.Errorf("accession %s: expecting new isolates", acc)
		}
	}
	if n.Has("PDS000055555.1") {
		t.Errorf("accession PDS000055555.1: unexpected new isolates")
	}
}

func newIndex(t testing.TB) *isolate.Index {
	t.Helper()

	ix := isolate.NewIndex()
	for _, f := range []string{fileA, fileB} {
		if err := ix.ReadTSV(strings.NewReader(f)); err != nil {
			t.Fatalf("unable to read metadata: %v", err)
		}
	}
	return ix
}
