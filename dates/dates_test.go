// Copyright © 2025 The pathotrack authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dates_test

import (
	"testing"

	"github.com/pathotrack/pathotrack/dates"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want dates.Date
	}{
		"month/day/year":    {raw: "6/15/2021", want: dates.Date{Year: 2021, Month: 6, Day: 15}},
		"padded m/d/y":      {raw: "06/05/2021", want: dates.Date{Year: 2021, Month: 6, Day: 5}},
		"two digit year":    {raw: "6/15/21", want: dates.Date{Year: 21, Month: 6, Day: 15}},
		"year-month-day":    {raw: "2021-06-15", want: dates.Date{Year: 2021, Month: 6, Day: 15}},
		"short y-m-d":       {raw: "2021-6-5", want: dates.Date{Year: 2021, Month: 6, Day: 5}},
		"bare year":         {raw: "2019", want: dates.Date{Year: 2019, Month: 1, Day: 1}},
		"year prefix":       {raw: "2019/unknown", want: dates.Date{Year: 2019, Month: 1, Day: 1}},
		"year month prefix": {raw: "2019-06", want: dates.Date{Year: 2019, Month: 1, Day: 1}},
		"spaces":            {raw: "  2021-06-15  ", want: dates.Date{Year: 2021, Month: 6, Day: 15}},
	}

	for name, test := range tests {
		d, err := dates.Parse(test.raw)
		if err != nil {
			t.Errorf("%s: %q: unexpected error: %v", name, test.raw, err)
			continue
		}
		if d != test.want {
			t.Errorf("%s: %q: got %v, want %v", name, test.raw, d, test.want)
		}
	}
}

func TestParseBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		d, err := dates.Parse(raw)
		if err != nil {
			t.Errorf("blank %q: unexpected error: %v", raw, err)
		}
		if d != dates.Sentinel {
			t.Errorf("blank %q: got %v, want sentinel %v", raw, d, dates.Sentinel)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"missing",
		"not a date",
		"June 15, 2021",
		"15/6/2021",  // no 15th month
		"2/30/2020",  // no such day
		"2021-13-01", // no 13th month
	}
	for _, raw := range invalid {
		if _, err := dates.Parse(raw); err == nil {
			t.Errorf("%q: expecting error", raw)
		}
	}
}

func TestParseLax(t *testing.T) {
	d, warn := dates.ParseLax("garbled")
	if warn == nil {
		t.Errorf("garbled input: expecting a warning")
	}
	if d != dates.Sentinel {
		t.Errorf("garbled input: got %v, want sentinel %v", d, dates.Sentinel)
	}

	d, warn = dates.ParseLax("2021-06-15")
	if warn != nil {
		t.Errorf("valid input: unexpected warning: %v", warn)
	}
	if want := (dates.Date{Year: 2021, Month: 6, Day: 15}); d != want {
		t.Errorf("valid input: got %v, want %v", d, want)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b dates.Date
		want int
	}{
		{dates.Date{2021, 6, 15}, dates.Date{2021, 6, 15}, 0},
		{dates.Date{2019, 1, 1}, dates.Date{2021, 6, 15}, -1},
		{dates.Date{2021, 6, 15}, dates.Date{2021, 6, 14}, 1},
		{dates.Date{2021, 5, 15}, dates.Date{2021, 6, 15}, -1},
		{dates.Sentinel, dates.Date{1970, 1, 1}, -1},
	}
	for _, test := range tests {
		if c := test.a.Compare(test.b); c != test.want {
			t.Errorf("compare %v vs %v: got %d, want %d", test.a, test.b, c, test.want)
		}
	}
}
