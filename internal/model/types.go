package model

import (
	"fmt"
	"path/filepath"
)

// Options holds the tokens of a Touchstone option line ("# GHZ S RI R 50").
// They are kept as metadata only; values are never converted.
type Options struct {
	FreqUnit  string `json:"freqUnit,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Format    string `json:"format,omitempty"`
}

// Dataset is one parsed measurement file. It is immutable once returned by
// the parser.
type Dataset struct {
	FilePath    string
	Ports       int
	Z0          float64
	Comments    []string
	Header      string
	Options     Options
	Frequencies []float64
	// Samples is indexed by (row-1)*Ports+(col-1); every entry has
	// len(Frequencies) elements.
	Samples [][]complex128
}

// Name is the base name of the file, used as the display name of its node.
func (d *Dataset) Name() string { return filepath.Base(d.FilePath) }

// Len returns the number of frequency records.
func (d *Dataset) Len() int { return len(d.Frequencies) }

// Index returns the flattened sample index of c.
func (d *Dataset) Index(c Column) (int, error) {
	if c.Row < 1 || c.Row > d.Ports || c.Col < 1 || c.Col > d.Ports {
		return 0, &IndexError{Row: c.Row, Col: c.Col, Ports: d.Ports}
	}
	return (c.Row-1)*d.Ports + (c.Col - 1), nil
}

// Column is a 1-indexed (row, col) coordinate into the N×N matrix.
type Column struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Column) String() string { return fmt.Sprintf("[%d,%d]", c.Row, c.Col) }

// Label names the matrix entry the way engineers read it: S21, or S(10,2)
// once an index needs two digits.
func (c Column) Label() string {
	if c.Row > 9 || c.Col > 9 {
		return fmt.Sprintf("S(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("S%d%d", c.Row, c.Col)
}

// RenderConfig is the per-file presentation state.
type RenderConfig struct {
	Columns    []Column
	LineWidth  int
	LineColor  Color
	Multiplier float64 // stored and persisted, not applied to plotted values
}

// DefaultRenderConfig returns the settings of a freshly added file.
func DefaultRenderConfig(c Color) RenderConfig {
	return RenderConfig{LineWidth: 1, LineColor: c, Multiplier: 1}
}

// ChartGlobals is the chart-wide configuration.
type ChartGlobals struct {
	Title  string
	XTitle string
	YTitle string
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	XGrid  int
	YGrid  int
	Legend bool
}

// DefaultGlobals mirrors a freshly created chart: unit ranges, five ticks per
// axis, legend hidden.
func DefaultGlobals() ChartGlobals {
	return ChartGlobals{XMin: 0, XMax: 1, YMin: 0, YMax: 1, XGrid: 5, YGrid: 5}
}
