// Package filter selects exported samples by series label and by a boolean
// expression over their values.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"

	"snpview/internal/series"
)

type Criteria struct {
	Query    string // plain contains on the series label, or regex when UseRegex
	UseRegex bool
	// Expr is a govaluate expression over freq, re, im, mag, db, phase, row
	// and col, e.g. "freq >= 1e9 && db < -10".
	Expr string
}

// Empty reports whether c lets every sample through.
func (c Criteria) Empty() bool {
	return c.Query == "" && strings.TrimSpace(c.Expr) == ""
}

// ParseQuery treats /.../ as a regular expression and anything else as plain text.
func ParseQuery(q string) (query string, regex bool) {
	if len(q) >= 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/") {
		return q[1 : len(q)-1], true
	}
	return q, false
}

type Evaluator struct {
	c    Criteria
	re   *regexp.Regexp
	expr *govaluate.EvaluableExpression
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	e := &Evaluator{c: c}
	var err error
	if c.UseRegex && c.Query != "" {
		if e.re, err = regexp.Compile(c.Query); err != nil {
			return nil, fmt.Errorf("label pattern: %w", err)
		}
	}
	if strings.TrimSpace(c.Expr) != "" {
		if e.expr, err = govaluate.NewEvaluableExpression(c.Expr); err != nil {
			return nil, fmt.Errorf("expression: %w", err)
		}
		for _, v := range e.expr.Vars() {
			if _, ok := params(series.Sample{})[v]; !ok {
				return nil, fmt.Errorf("expression: unknown variable %q", v)
			}
		}
	}
	return e, nil
}

func params(s series.Sample) map[string]any {
	return map[string]any{
		"freq":  s.Freq,
		"re":    s.Re,
		"im":    s.Im,
		"mag":   s.Mag(),
		"db":    s.DB(),
		"phase": s.Phase(),
		"row":   float64(s.Row),
		"col":   float64(s.Col),
	}
}

// Match reports whether s passes every configured criterion. Expressions that
// fail to evaluate or do not yield a boolean reject the sample.
func (e *Evaluator) Match(s series.Sample) bool {
	if e.c.Query != "" {
		if e.re != nil {
			if !e.re.MatchString(s.Series) {
				return false
			}
		} else if !strings.Contains(strings.ToLower(s.Series), strings.ToLower(e.c.Query)) {
			return false
		}
	}
	if e.expr != nil {
		result, err := e.expr.Evaluate(params(s))
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

// Apply keeps the samples e matches, in order.
func (e *Evaluator) Apply(in []series.Sample) []series.Sample {
	out := make([]series.Sample, 0, len(in))
	for _, s := range in {
		if e.Match(s) {
			out = append(out, s)
		}
	}
	return out
}
