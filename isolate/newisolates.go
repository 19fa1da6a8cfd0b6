// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isolate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TreeAccession is the field with the accession
// of a tree result set
// in a new isolates file.
const TreeAccession = "pds_acc"

// NewIsolates is the set of tree result sets
// that contain newly uploaded isolates.
// A tree absent from the set
// has no new isolates.
type NewIsolates map[string]bool

// ReadNewIsolates reads the set of trees with new isolates
// from a TSV file.
//
// The TSV file must have a header row;
// a leading '#' on the header is ignored.
// The file must contain a PDS_acc field
// with the accession of the tree result set.
//
// Here is an example file:
//
//	#PDS_acc	target_acc
//	PDS000012345.6	PDT000100001.1
//	PDS000012345.6	PDT000100007.1
//	PDS000099887.2	PDT000100019.1
func ReadNewIsolates(r io.Reader) (NewIsolates, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	col := -1
	for i, h := range head {
		h = strings.ToLower(strings.TrimLeft(strings.TrimSpace(h), "# "))
		if h == TreeAccession {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("expecting field %q", TreeAccession)
	}

	n := make(NewIsolates)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		acc := canon(row[col])
		if acc == "" {
			continue
		}
		n[acc] = true
	}
	return n, nil
}

// Has returns true if the given tree result set
// contains new isolates.
func (n NewIsolates) Has(acc string) bool {
	return n[canon(acc)]
}
