package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseColumns(t *testing.T) {
	cases := []struct {
		in   string
		want []Column
	}{
		{"", []Column{}},
		{"[1,1]", []Column{{1, 1}}},
		{"[1,1],[2,1]", []Column{{1, 1}, {2, 1}}},
		{"[1,2], [3,4]", []Column{{1, 2}, {3, 4}}},
		// junk between pairs is skipped
		{"x[1,2]yy[ 3,4][5,6]", []Column{{1, 2}, {5, 6}}},
		{"[12,3]", []Column{{12, 3}}},
	}
	for _, c := range cases {
		got := ParseColumns(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseColumns(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatColumnsRoundTrip(t *testing.T) {
	in := []Column{{1, 1}, {2, 1}, {10, 4}}
	s := FormatColumns(in)
	if s != "[1,1],[2,1],[10,4]" {
		t.Fatalf("format: %q", s)
	}
	if got := ParseColumns(s); !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip: %v", got)
	}
	if FormatColumns(nil) != "" {
		t.Fatalf("empty list should format to empty string")
	}
	// spacing differs, pairs survive
	if got := FormatColumns(ParseColumns("[1,2] , [2,2]")); got != "[1,2],[2,2]" {
		t.Fatalf("normalised: %q", got)
	}
}

func TestColumnLabel(t *testing.T) {
	if l := (Column{2, 1}).Label(); l != "S21" {
		t.Fatalf("label: %s", l)
	}
	if l := (Column{10, 2}).Label(); l != "S(10,2)" {
		t.Fatalf("label: %s", l)
	}
}

func TestColorHex(t *testing.T) {
	c, err := ParseColor("#FF8000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (Color{R: 255, G: 128, B: 0}) {
		t.Fatalf("color: %+v", c)
	}
	if c.Hex() != "#ff8000" {
		t.Fatalf("hex: %s", c.Hex())
	}
	for _, bad := range []string{"#12345", "#zzzzzz", "red", "#1234567"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDatasetIndex(t *testing.T) {
	ds := &Dataset{FilePath: "/tmp/dut.s2p", Ports: 2}
	idx, err := ds.Index(Column{2, 1})
	if err != nil || idx != 2 {
		t.Fatalf("index: %d %v", idx, err)
	}
	_, err = ds.Index(Column{3, 1})
	var ie *IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IndexError, got %v", err)
	}
	if ds.Name() != "dut.s2p" {
		t.Fatalf("name: %s", ds.Name())
	}
}

func TestIsRejected(t *testing.T) {
	if !IsRejected(&ValidationError{Field: "xMin", Msg: "must be below xMax"}) {
		t.Fatal("validation error not recognised")
	}
	if IsRejected(&RangeError{What: "file", Index: 3, Len: 1}) {
		t.Fatal("range error treated as rejection")
	}
}

func TestTint(t *testing.T) {
	c := Color{R: 0x20, G: 0x9f, B: 0xdf}
	if c.Tint(0) != c {
		t.Fatal("zero tint should keep the color")
	}
	if w := c.Tint(1); w != (Color{R: 255, G: 255, B: 255}) {
		t.Fatalf("full tint: %v", w)
	}
	half := c.Tint(0.5)
	if half.R <= c.R || half.G <= c.G {
		t.Fatalf("half tint should be lighter: %v", half)
	}
}
