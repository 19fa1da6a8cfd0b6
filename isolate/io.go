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

// ReadTSV reads isolate metadata from a TSV file
// and merges it into the index.
//
// The TSV file must have a header row;
// a leading '#' on the header is ignored.
// Columns are matched by header name,
// not by position,
// and the file must contain a target_acc field
// with the isolate accession.
// All other columns are stored as metadata fields.
// A row with fewer columns than the header is accepted;
// its absent fields read as empty.
//
// Here is an example file:
//
//	#target_acc	label	collection_date	attribute_package
//	PDT000100001.1	2021CL-00123	2021-06-15	clinical
//	PDT000100002.1	2021EN-00124	6/20/2021	environmental/food
//
// Files read earlier take priority:
// a field already set for an accession
// is never overwritten by a later file.
func (ix *Index) ReadTSV(r io.Reader) error {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimLeft(strings.TrimSpace(h), "# "))
		fields[h] = i
	}
	accCol, ok := fields[Accession]
	if !ok {
		return fmt.Errorf("expecting field %q", Accession)
	}

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}

		if accCol >= len(row) {
			continue
		}
		acc := row[accCol]
		if canon(acc) == "" {
			continue
		}
		for f, i := range fields {
			if i == accCol {
				continue
			}
			// a short row reads the absent fields as empty
			v := ""
			if i < len(row) {
				v = row[i]
			}
			ix.Add(acc, f, v)
		}
	}
	return nil
}
