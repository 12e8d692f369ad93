// Package chartcfg reads and writes saved chart configurations.
//
// The format is line oriented:
//
//	chart title
//	x-axis title
//	y-axis title
//	xMin xMax yMin yMax xGrid yGrid legend(0|1)
//	fileCount
//	then per file:
//	  path
//	  column list ("[1,1],[2,1]")
//	  lineWidth colorHex multiplier
//
// Text fields occupy exactly one line. Numeric fields are a whitespace token
// stream and may share or span lines. There is no version marker.
package chartcfg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"snpview/internal/model"
)

// File is the saved state of one loaded measurement file.
type File struct {
	Path       string
	Columns    string
	LineWidth  int
	LineColor  model.Color
	Multiplier float64
}

// Config is a complete chart configuration.
type Config struct {
	Globals model.ChartGlobals
	Files   []File
}

const source = "chart config"

// Encode writes one value per line. Newlines inside text fields are replaced
// by spaces since they would break the line structure.
func Encode(cfg Config) []byte {
	var b bytes.Buffer
	g := cfg.Globals
	text := func(s string) {
		b.WriteString(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
		b.WriteByte('\n')
	}
	num := func(v float64) {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	integer := func(v int) {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('\n')
	}
	text(g.Title)
	text(g.XTitle)
	text(g.YTitle)
	num(g.XMin)
	num(g.XMax)
	num(g.YMin)
	num(g.YMax)
	integer(g.XGrid)
	integer(g.YGrid)
	if g.Legend {
		integer(1)
	} else {
		integer(0)
	}
	integer(len(cfg.Files))
	for _, f := range cfg.Files {
		text(f.Path)
		text(f.Columns)
		integer(f.LineWidth)
		text(f.LineColor.Hex())
		num(f.Multiplier)
	}
	return b.Bytes()
}

// Decode parses data produced by Encode. Paths and column lists are not
// validated here; that happens when the configuration is applied.
func Decode(data []byte) (Config, error) {
	d := &decoder{lines: strings.Split(string(data), "\n"), record: -1}
	var cfg Config
	g := &cfg.Globals
	var err error

	if g.Title, err = d.line("chart title"); err != nil {
		return Config{}, err
	}
	if g.XTitle, err = d.line("x title"); err != nil {
		return Config{}, err
	}
	if g.YTitle, err = d.line("y title"); err != nil {
		return Config{}, err
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{{"xMin", &g.XMin}, {"xMax", &g.XMax}, {"yMin", &g.YMin}, {"yMax", &g.YMax}} {
		if *f.dst, err = d.number(f.name); err != nil {
			return Config{}, err
		}
	}
	if g.XGrid, err = d.integer("xGrid"); err != nil {
		return Config{}, err
	}
	if g.YGrid, err = d.integer("yGrid"); err != nil {
		return Config{}, err
	}
	if g.Legend, err = d.boolean("legend"); err != nil {
		return Config{}, err
	}
	n, err := d.integer("file count")
	if err != nil {
		return Config{}, err
	}
	if n < 0 {
		return Config{}, d.fail("file count", fmt.Sprintf("negative value %d", n), nil)
	}

	for i := 0; i < n; i++ {
		d.record = i
		var f File
		if f.Path, err = d.line("path"); err != nil {
			return Config{}, err
		}
		if f.Columns, err = d.line("columns"); err != nil {
			return Config{}, err
		}
		if f.LineWidth, err = d.integer("line width"); err != nil {
			return Config{}, err
		}
		tok, err := d.token("line color")
		if err != nil {
			return Config{}, err
		}
		if f.LineColor, err = model.ParseColor(tok); err != nil {
			return Config{}, d.fail("line color", "", err)
		}
		if f.Multiplier, err = d.number("multiplier"); err != nil {
			return Config{}, err
		}
		cfg.Files = append(cfg.Files, f)
	}
	return cfg, nil
}

type decoder struct {
	lines   []string
	pos     int
	pending []string
	record  int
}

func (d *decoder) fail(field, msg string, err error) error {
	if msg == "" {
		msg = "invalid " + field
	} else {
		msg = field + ": " + msg
	}
	return &model.FormatError{Source: source, Record: d.record, Msg: msg, Err: err}
}

func (d *decoder) line(field string) (string, error) {
	if len(d.pending) > 0 {
		return "", d.fail(field, fmt.Sprintf("unexpected %q before line", strings.Join(d.pending, " ")), nil)
	}
	if d.pos >= len(d.lines) {
		return "", d.fail(field, "unexpected end of input", nil)
	}
	l := strings.TrimRight(d.lines[d.pos], "\r")
	d.pos++
	return l, nil
}

func (d *decoder) token(field string) (string, error) {
	for len(d.pending) == 0 {
		if d.pos >= len(d.lines) {
			return "", d.fail(field, "unexpected end of input", nil)
		}
		d.pending = strings.Fields(d.lines[d.pos])
		d.pos++
	}
	t := d.pending[0]
	d.pending = d.pending[1:]
	return t, nil
}

func (d *decoder) number(field string) (float64, error) {
	t, err := d.token(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, d.fail(field, "", err)
	}
	return v, nil
}

func (d *decoder) integer(field string) (int, error) {
	t, err := d.token(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return 0, d.fail(field, "", err)
	}
	return v, nil
}

func (d *decoder) boolean(field string) (bool, error) {
	t, err := d.token(field)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(t)
	if err != nil {
		return false, d.fail(field, "", err)
	}
	return v, nil
}

// ReadFile loads and decodes a configuration file.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &model.IoError{Path: path, Err: err}
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteFile encodes cfg to path through a temporary file and a rename.
func WriteFile(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &model.IoError{Path: path, Err: err}
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, Encode(cfg), 0o644); err != nil {
		_ = os.Remove(tmp)
		return &model.IoError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &model.IoError{Path: path, Err: err}
	}
	return nil
}
