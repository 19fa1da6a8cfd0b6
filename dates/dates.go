// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dates implements a heuristic parser
// for the collection dates found in surveillance metadata.
//
// Dates in isolate metadata come in several forms
// ("3/4/2021", "2021-03-04", "2019", "2019/unknown", ...),
// and a bad date in a single isolate
// must not abort a whole run.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A Date is a calendar date
// with a total chronological order.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Sentinel is the date used for any value
// that cannot be parsed as a date.
// It is the day before the epoch start,
// so it sorts before any real collection date.
var Sentinel = Date{Year: 1969, Month: 12, Day: 31}

// Compare returns -1 if d is before o,
// +1 if d is after o,
// and 0 if both are the same day.
func (d Date) Compare(o Date) int {
	if d.Year != o.Year {
		if d.Year < o.Year {
			return -1
		}
		return 1
	}
	if d.Month != o.Month {
		if d.Month < o.Month {
			return -1
		}
		return 1
	}
	if d.Day != o.Day {
		if d.Day < o.Day {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After returns true if d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// IsZero returns true for the zero value of a date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

var (
	mdy    = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	ymd    = regexp.MustCompile(`^\d{2,4}-\d{1,2}-\d{1,2}$`)
	year   = regexp.MustCompile(`^\d{4}$`)
	prefix = regexp.MustCompile(`^\d{4}`)
)

// Parse parses a date string,
// trying the following forms in order:
// month/day/year,
// year-month-day,
// a bare four digit year,
// and a string starting with four digits
// (read as a year).
// A blank string parses as the sentinel date.
// Only the first matching form is tried;
// a value that matches a form
// but is not a valid date
// (for example "2/30/2020")
// is an error.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Sentinel, nil
	case mdy.MatchString(s):
		v := strings.Split(s, "/")
		return newDate(v[2], v[0], v[1], s)
	case ymd.MatchString(s):
		v := strings.Split(s, "-")
		return newDate(v[0], v[1], v[2], s)
	case year.MatchString(s):
		y, err := strconv.Atoi(s)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %v", s, err)
		}
		return Date{Year: y, Month: 1, Day: 1}, nil
	case prefix.MatchString(s):
		y, err := strconv.Atoi(s[:4])
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %v", s, err)
		}
		return Date{Year: y, Month: 1, Day: 1}, nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// ParseLax parses a date string
// accepting any input:
// if s cannot be parsed as a date,
// it returns the sentinel date
// and a non-nil warning
// that the caller may log.
func ParseLax(s string) (Date, error) {
	d, err := Parse(s)
	if err != nil {
		return Sentinel, err
	}
	return d, nil
}

func newDate(ys, ms, ds, raw string) (Date, error) {
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", raw, err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", raw, err)
	}
	d, err := strconv.Atoi(ds)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %v", raw, err)
	}

	// reject dates such as "2/30/2020"
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, fmt.Errorf("invalid date %q: no such day", raw)
	}
	return Date{Year: y, Month: m, Day: d}, nil
}
