// Package series turns selected matrix entries of a dataset into plottable
// point sequences.
package series

import (
	"math"

	"snpview/internal/model"
)

// Point is one plotted sample: frequency against the real part.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is the curve for one matrix entry. Raw keeps the complex samples
// so exporters can emit both parts.
type Series struct {
	Label  string       `json:"label"`
	Column model.Column `json:"column"`
	Points []Point      `json:"points"`
	Raw    []complex128 `json:"-"`
}

// Bounds is the shared bounding box of every point in a Result. Valid is
// false when there is nothing to draw.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	Valid      bool
}

// Degenerate reports a box with zero width or height.
func (b Bounds) Degenerate() bool {
	return !b.Valid || b.XMin >= b.XMax || b.YMin >= b.YMax
}

type Result struct {
	Series []Series
	Bounds Bounds
}

// Empty reports whether the result has no drawable points.
func (r Result) Empty() bool { return !r.Bounds.Valid }

// Clone returns a deep copy. Raw in a projected Result aliases the dataset's
// samples, so anything handed out of the tree goes through Clone.
func (r Result) Clone() Result {
	out := Result{Bounds: r.Bounds, Series: make([]Series, len(r.Series))}
	for i, s := range r.Series {
		s.Points = append([]Point(nil), s.Points...)
		s.Raw = append([]complex128(nil), s.Raw...)
		out.Series[i] = s
	}
	return out
}

// Project builds one series per column, in order. The imaginary part and the
// file's multiplier are not applied to plotted values.
func Project(ds *model.Dataset, columns []model.Column) (Result, error) {
	res := Result{Series: make([]Series, 0, len(columns))}
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for _, c := range columns {
		idx, err := ds.Index(c)
		if err != nil {
			return Result{}, err
		}
		samples := ds.Samples[idx]
		s := Series{Label: c.Label(), Column: c, Points: make([]Point, len(ds.Frequencies)), Raw: samples}
		for i, f := range ds.Frequencies {
			y := real(samples[i])
			s.Points[i] = Point{X: f, Y: y}
			b.XMin = math.Min(b.XMin, f)
			b.XMax = math.Max(b.XMax, f)
			b.YMin = math.Min(b.YMin, y)
			b.YMax = math.Max(b.YMax, y)
			b.Valid = true
		}
		res.Series = append(res.Series, s)
	}
	if b.Valid {
		res.Bounds = b
	}
	return res, nil
}

// Sample is one complex value of one series, flattened for export.
type Sample struct {
	Series string  `json:"series"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Freq   float64 `json:"freq"`
	Re     float64 `json:"re"`
	Im     float64 `json:"im"`
}

// Mag is the magnitude of the sample.
func (s Sample) Mag() float64 { return math.Hypot(s.Re, s.Im) }

// DB is 20*log10 of the magnitude.
func (s Sample) DB() float64 { return 20 * math.Log10(s.Mag()) }

// Phase is the angle in degrees.
func (s Sample) Phase() float64 { return math.Atan2(s.Im, s.Re) * 180 / math.Pi }

// Samples flattens r series by series, in frequency order.
func (r Result) Samples() []Sample {
	var out []Sample
	for _, s := range r.Series {
		for i, p := range s.Points {
			sm := Sample{Series: s.Label, Row: s.Column.Row, Col: s.Column.Col, Freq: p.X, Re: p.Y}
			if i < len(s.Raw) {
				sm.Im = imag(s.Raw[i])
			}
			out = append(out, sm)
		}
	}
	return out
}
