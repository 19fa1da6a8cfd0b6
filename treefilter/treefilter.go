// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treefilter decides which trees of a result set
// are kept for a run,
// based on the collection dates of their isolates
// and on the presence of newly uploaded isolates.
package treefilter

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/js-arias/timetree"
	"github.com/pathotrack/pathotrack/dates"
	"github.com/pathotrack/pathotrack/isolate"
)

// A Window is an inclusive range of calendar dates.
// Both bounds are tested independently,
// so a reversed window simply matches nothing.
type Window struct {
	From dates.Date
	To   dates.Date
}

// Contains returns true if a date
// is inside the window,
// bounds included.
func (w Window) Contains(d dates.Date) bool {
	if d.Before(w.From) {
		return false
	}
	if d.After(w.To) {
		return false
	}
	return true
}

// Values of a collection date field
// that are read as "no date recorded".
var missing = map[string]bool{
	`""`:      true,
	"missing": true,
	"null":    true,
	"0":       true,
}

// A Filter holds the criteria used to accept or reject
// the trees of a result set.
type Filter struct {
	// Index is the isolate metadata of the result set.
	Index *isolate.Index

	// Window is the accepted range of collection dates.
	Window Window

	// New restricts the accepted trees
	// to trees with newly uploaded isolates.
	// If nil,
	// the criterion is not applied.
	New isolate.NewIsolates

	// Warn receives diagnostics for unparseable dates.
	// If nil,
	// diagnostics are discarded.
	Warn io.Writer
}

// Passes returns true if a tree
// satisfies every active criterion of the filter.
// The acc parameter is the accession of the tree result set
// (the tree file name without its suffix).
//
// A tree passes the date criterion
// if any single tip has a date inside the window:
// the collection date of the tip isolate,
// or its creation date
// when no collection date was recorded.
func (f *Filter) Passes(acc string, t *timetree.Tree) bool {
	if f.New != nil && !f.New.Has(acc) {
		return false
	}
	return f.inWindow(t)
}

func (f *Filter) inWindow(t *timetree.Tree) bool {
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		d := f.tipDate(t.Taxon(id))
		if f.Window.Contains(d) {
			return true
		}
	}
	return false
}

func (f *Filter) tipDate(tip string) dates.Date {
	d, warn := TipDate(f.Index, tip)
	if warn != nil && f.Warn != nil {
		fmt.Fprintf(f.Warn, "warning: isolate %s: %v\n", Accession(tip), warn)
	}
	return d
}

// TipDate resolves the date of a tree tip:
// the collection date of the tip isolate,
// or its creation date
// when no collection date was recorded.
// An unparseable date resolves to the sentinel date
// with a non-nil warning.
func TipDate(ix *isolate.Index, tip string) (dates.Date, error) {
	acc := Accession(tip)
	v := ix.Field(acc, isolate.CollectionDate)
	if noDate(v) {
		v = ix.Field(acc, isolate.CreationDate)
	}
	return dates.ParseLax(v)
}

func noDate(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	return missing[strings.ToLower(v)]
}

// Accession returns the isolate accession of a tip label
// in its canonical (upper case) form,
// removing any surrounding quotes.
// Tree readers are free to re-case taxon names,
// so the raw tip label is never used as is.
func Accession(tip string) string {
	return strings.ToUpper(strings.Trim(strings.TrimSpace(tip), `'"`))
}

// branch lengths in a newick tree
var branchLen = regexp.MustCompile(`:\s*([0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?)`)

// Degenerate returns true for a newick tree
// with a zero root height,
// that is,
// a tree in which no branch has a positive length.
// Such unresolved trees are by convention
// left out of report rendering.
//
// The test is made on the newick text
// because tree readers may clamp zero length branches
// to a minimum positive length.
func Degenerate(newick []byte) bool {
	for _, m := range branchLen.FindAllSubmatch(newick, -1) {
		v, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			continue
		}
		if v > 0 {
			return false
		}
	}
	return true
}
