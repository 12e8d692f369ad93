package model

import (
	"regexp"
	"strconv"
	"strings"
)

var reColumn = regexp.MustCompile(`\[(\d+),(\d+)\]`)

// ParseColumns collects every "[row,col]" pair in text, left to right.
// Anything between pairs is skipped rather than rejected.
func ParseColumns(text string) []Column {
	matches := reColumn.FindAllStringSubmatch(text, -1)
	out := make([]Column, 0, len(matches))
	for _, m := range matches {
		r, err1 := strconv.Atoi(m[1])
		c, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			// digit runs too long for int
			continue
		}
		out = append(out, Column{Row: r, Col: c})
	}
	return out
}

// FormatColumns joins pairs as "[r,c],[r,c]".
func FormatColumns(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
