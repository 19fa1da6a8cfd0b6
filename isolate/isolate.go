// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package isolate provides an index of per-isolate metadata
// aggregated from the tabular files
// published with a surveillance result set.
package isolate

import (
	"slices"
	"strings"
)

// Well known metadata fields.
const (
	// Accession is the field with the isolate accession,
	// the join key between trees and metadata.
	Accession = "target_acc"

	// CollectionDate is the field with the date
	// in which an isolate was collected.
	CollectionDate = "collection_date"

	// CreationDate is the field with the date
	// in which an isolate was added to the repository,
	// used as a stand-in
	// when the collection date is missing.
	CreationDate = "target_creation_date"

	// Label is the field with the display name of an isolate.
	Label = "label"

	// Package is the field with the attribute package of an isolate
	// (clinical, environmental, etc.).
	Package = "attribute_package"
)

// A Record is the metadata of a single isolate.
type Record struct {
	acc    string
	fields map[string]string
}

// Acc returns the accession of the isolate.
func (r *Record) Acc() string {
	return r.acc
}

// Field returns the value of a named metadata field.
// An unknown field reads as an empty string.
func (r *Record) Field(name string) string {
	return r.fields[strings.ToLower(name)]
}

// Fields returns the names of the fields
// set on the record.
func (r *Record) Fields() []string {
	fs := make([]string, 0, len(r.fields))
	for f := range r.fields {
		fs = append(fs, f)
	}
	slices.Sort(fs)
	return fs
}

// merge folds a row of values into the record,
// keeping the first non-empty value seen
// for each field.
// Metadata may be split across several overlapping files
// that disagree on some values;
// the file processed first is the one trusted.
func (r *Record) merge(fields map[string]string) {
	for f, v := range fields {
		if v == "" {
			continue
		}
		if r.fields[f] != "" {
			continue
		}
		r.fields[f] = v
	}
}

// An Index is a collection of isolate records
// keyed by accession.
type Index struct {
	recs map[string]*Record
}

// NewIndex creates a new empty metadata index.
func NewIndex() *Index {
	return &Index{
		recs: make(map[string]*Record),
	}
}

// Record returns the record for an accession,
// or nil if the accession is unknown.
// Accessions match without regard to case.
func (ix *Index) Record(acc string) *Record {
	return ix.recs[canon(acc)]
}

// Field returns a metadata field for an accession.
// An unknown accession or field reads as an empty string.
func (ix *Index) Field(acc, field string) string {
	r := ix.recs[canon(acc)]
	if r == nil {
		return ""
	}
	return r.Field(field)
}

// Add adds a field value for an accession,
// honoring first-write-wins:
// if the field is already set,
// the stored value is kept.
func (ix *Index) Add(acc, field, value string) {
	acc = canon(acc)
	if acc == "" {
		return
	}
	r, ok := ix.recs[acc]
	if !ok {
		r = &Record{
			acc:    acc,
			fields: make(map[string]string),
		}
		ix.recs[acc] = r
	}
	r.merge(map[string]string{strings.ToLower(field): value})
}

// Accessions returns the accessions stored in the index.
func (ix *Index) Accessions() []string {
	accs := make([]string, 0, len(ix.recs))
	for a := range ix.recs {
		accs = append(accs, a)
	}
	slices.Sort(accs)
	return accs
}

// Canon returns an accession in its canonical form.
func canon(acc string) string {
	return strings.ToUpper(strings.TrimSpace(acc))
}

// BrowserURL returns the public address of an accession
// in the isolate browser.
func BrowserURL(acc string) string {
	return "https://www.ncbi.nlm.nih.gov/pathogens/isolates/#" + canon(acc)
}
