package parse

import (
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"snpview/internal/model"
	"snpview/internal/util/logx"
)

var reExt = regexp.MustCompile(`\.[sS](\d+)[pP]$`)

// MaxPorts bounds N so a record of N*N complex values stays allocatable.
const MaxPorts = 1024

// dataLexer splits the data section into numbers and comments. Any run of
// non-space text is a Word; strconv decides whether it is a valid number.
var dataLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `![^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Word", Pattern: `[^\s!]+`},
})

var (
	tokComment    = dataLexer.Symbols()["Comment"]
	tokWhitespace = dataLexer.Symbols()["Whitespace"]
)

// Ports returns N from a ".sNp" file name.
func Ports(path string) (int, error) {
	m := reExt.FindStringSubmatch(path)
	if m == nil {
		return 0, &model.FormatError{Source: path, Record: -1, Msg: `incorrect file format, expected ".sNp"`}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > MaxPorts {
		return 0, &model.FormatError{Source: path, Record: -1, Msg: fmt.Sprintf("invalid port count %q: want 1..%d", m[1], MaxPorts)}
	}
	return n, nil
}

// ParseFile reads a Touchstone-style measurement file. The port count comes
// from the file extension.
func ParseFile(path string) (*model.Dataset, error) {
	n, err := Ports(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.IoError{Path: path, Err: err}
	}
	defer f.Close()
	ds, err := Parse(f, path, n)
	if err != nil {
		return nil, err
	}
	logx.Infof("parse: %s ports=%d records=%d z0=%g", path, ds.Ports, ds.Len(), ds.Z0)
	return ds, nil
}

// Parse reads an N-port dataset from r. path is recorded on the dataset and
// used in error messages.
func Parse(r io.Reader, path string, ports int) (*model.Dataset, error) {
	if ports < 1 || ports > MaxPorts {
		return nil, &model.FormatError{Source: path, Record: -1, Msg: fmt.Sprintf("invalid port count %d: want 1..%d", ports, MaxPorts)}
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &model.IoError{Path: path, Err: err}
	}
	ds := &model.Dataset{FilePath: path, Ports: ports}

	body, consumed := readPreamble(string(raw), ds)
	if ds.Header != "" {
		ds.Options, ds.Z0 = parseOptionLine(path, ds.Header)
	}

	if err := readRecords(body, consumed, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// readPreamble consumes leading comments, the option line and the comments
// that follow it. It returns the unread remainder and the number of lines
// consumed.
func readPreamble(s string, ds *model.Dataset) (string, int) {
	lines := 0
	for s != "" {
		line, rest, _ := strings.Cut(s, "\n")
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "!"):
			// only comments ahead of the option line are kept
			if ds.Header == "" {
				ds.Comments = append(ds.Comments, line)
			}
		case strings.HasPrefix(trimmed, "#") && ds.Header == "":
			ds.Header = trimmed
		default:
			return s, lines
		}
		s = rest
		lines++
	}
	return s, lines
}

var (
	freqUnits  = map[string]bool{"HZ": true, "KHZ": true, "MHZ": true, "GHZ": true}
	parameters = map[string]bool{"S": true, "Y": true, "Z": true, "H": true, "G": true}
	formats    = map[string]bool{"RI": true, "MA": true, "DB": true}
)

// parseOptionLine extracts metadata and the reference impedance. z0 follows
// the R keyword; without one the fifth token after '#' is used.
func parseOptionLine(path, header string) (model.Options, float64) {
	var opts model.Options
	fields := strings.Fields(strings.TrimPrefix(header, "#"))
	z0Tok := ""
	for i, f := range fields {
		u := strings.ToUpper(f)
		switch {
		case u == "R" && i+1 < len(fields):
			z0Tok = fields[i+1]
		case freqUnits[u] && opts.FreqUnit == "":
			opts.FreqUnit = u
		case parameters[u] && opts.Parameter == "":
			opts.Parameter = u
		case formats[u] && opts.Format == "":
			opts.Format = u
		}
	}
	if z0Tok == "" && len(fields) >= 5 {
		z0Tok = fields[4]
	}
	if z0Tok == "" {
		return opts, 0
	}
	z0, err := strconv.ParseFloat(z0Tok, 64)
	if err != nil {
		logx.Warnf("parse: %s: reference impedance %q is not a number, using 0", path, z0Tok)
		return opts, 0
	}
	return opts, z0
}

func readRecords(body string, lineOffset int, ds *model.Dataset) error {
	n2 := ds.Ports * ds.Ports
	ds.Samples = make([][]complex128, n2)
	width := 1 + 2*n2

	lex, err := dataLexer.LexString(ds.FilePath, body)
	if err != nil {
		return &model.FormatError{Source: ds.FilePath, Record: 0, Msg: "cannot tokenise data", Err: err}
	}
	rec := make([]float64, 0, width)
	for {
		tok, err := lex.Next()
		if err != nil {
			return &model.FormatError{Source: ds.FilePath, Record: ds.Len(), Msg: "cannot tokenise data", Err: err}
		}
		if tok.EOF() {
			break
		}
		if tok.Type == tokComment || tok.Type == tokWhitespace {
			continue
		}
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return &model.FormatError{
				Source: ds.FilePath,
				Record: ds.Len(),
				Msg:    fmt.Sprintf("line %d: malformed number %q", tok.Pos.Line+lineOffset, tok.Value),
			}
		}
		rec = append(rec, v)
		if len(rec) < width {
			continue
		}
		ds.Frequencies = append(ds.Frequencies, rec[0])
		for i := 0; i < n2; i++ {
			ds.Samples[i] = append(ds.Samples[i], complex(rec[1+2*i], rec[2+2*i]))
		}
		rec = rec[:0]
	}
	if len(rec) > 0 {
		return &model.FormatError{
			Source: ds.FilePath,
			Record: ds.Len(),
			Msg:    fmt.Sprintf("truncated record: %d of %d values", len(rec), width),
		}
	}
	return nil
}
