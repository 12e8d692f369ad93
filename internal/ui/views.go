package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"snpview/internal/model"
)

func overlay(base, overlay string) string {
	// Draw overlay on top of base by replacing lines where overlay has content.
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(overlay, "\n")
	n := max(len(bLines), len(oLines))
	for len(bLines) < n {
		bLines = append(bLines, "")
	}
	for len(oLines) < n {
		oLines = append(oLines, "")
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		// Treat whitespace-only overlay lines as transparent
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// truncate cuts s to w terminal cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

func describeDataset(ds *model.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "path:       %s\n", ds.FilePath)
	fmt.Fprintf(&b, "ports:      %d\n", ds.Ports)
	fmt.Fprintf(&b, "records:    %d\n", ds.Len())
	if ds.Len() > 0 {
		fmt.Fprintf(&b, "frequency:  %g .. %g\n", ds.Frequencies[0], ds.Frequencies[ds.Len()-1])
	}
	fmt.Fprintf(&b, "z0:         %g\n", ds.Z0)
	o := ds.Options
	fmt.Fprintf(&b, "options:    unit=%s parameter=%s format=%s\n", o.FreqUnit, o.Parameter, o.Format)
	fmt.Fprintf(&b, "header:     %s\n", ds.Header)
	if len(ds.Comments) > 0 {
		b.WriteString("\ncomments:\n")
		for _, c := range ds.Comments {
			b.WriteString("  " + c + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
