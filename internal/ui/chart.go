package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snpview/internal/model"
	"snpview/internal/series"
)

var glyphs = []rune{'•', '+', 'x', 'o', '*', '#'}

const (
	cellEmpty = -2
	cellGrid  = -1
)

// raster is a character canvas; owner holds cellEmpty, cellGrid or the
// index of the series that drew the cell.
type raster struct {
	w, h  int
	cells [][]rune
	owner [][]int
}

func newRaster(w, h int) *raster {
	r := &raster{w: w, h: h, cells: make([][]rune, h), owner: make([][]int, h)}
	for y := range r.cells {
		r.cells[y] = []rune(strings.Repeat(" ", w))
		r.owner[y] = make([]int, w)
		for x := range r.owner[y] {
			r.owner[y][x] = cellEmpty
		}
	}
	return r
}

func (r *raster) set(x, y int, ch rune, owner int) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	r.cells[y][x] = ch
	r.owner[y][x] = owner
}

// rasterize draws the grid and every series of res into a w×h canvas using
// the axis ranges of g. Points outside the ranges are clipped.
func rasterize(res series.Result, g model.ChartGlobals, w, h int) *raster {
	r := newRaster(w, h)
	if w < 2 || h < 2 {
		return r
	}
	for i := 0; i <= g.XGrid; i++ {
		x := int(math.Round(float64(i) * float64(w-1) / float64(max(g.XGrid, 1))))
		for y := 0; y < h; y++ {
			r.set(x, y, '·', cellGrid)
		}
	}
	for i := 0; i <= g.YGrid; i++ {
		y := int(math.Round(float64(i) * float64(h-1) / float64(max(g.YGrid, 1))))
		for x := 0; x < w; x++ {
			r.set(x, y, '·', cellGrid)
		}
	}
	if !(g.XMax > g.XMin) || !(g.YMax > g.YMin) {
		return r
	}
	toCell := func(p series.Point) (int, int) {
		fx := (p.X - g.XMin) / (g.XMax - g.XMin) * float64(w-1)
		fy := (p.Y - g.YMin) / (g.YMax - g.YMin) * float64(h-1)
		return int(math.Round(fx)), h - 1 - int(math.Round(fy))
	}
	inside := func(p series.Point) bool {
		return p.X >= g.XMin && p.X <= g.XMax && p.Y >= g.YMin && p.Y <= g.YMax
	}
	for si, s := range res.Series {
		glyph := glyphs[si%len(glyphs)]
		for i, p := range s.Points {
			if i > 0 && inside(p) && inside(s.Points[i-1]) {
				x0, y0 := toCell(s.Points[i-1])
				x1, y1 := toCell(p)
				line(x0, y0, x1, y1, func(x, y int) { r.set(x, y, glyph, si) })
			} else if inside(p) {
				x, y := toCell(p)
				r.set(x, y, glyph, si)
			}
		}
	}
	return r
}

// line walks the cells between two points (Bresenham).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// seriesStyles gives every series of the file a tint of its line color.
// Terminals cannot draw thicker lines, so widths above 1 are rendered bold.
func seriesStyles(rc model.RenderConfig, n int) []lipgloss.Style {
	out := make([]lipgloss.Style, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = 0.6 * float64(i) / float64(n-1)
		}
		out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(rc.LineColor.Tint(t).Hex())).Bold(rc.LineWidth > 1)
	}
	return out
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// renderChart lays out title, y labels, canvas, x labels and legend in a
// w×h box.
func renderChart(st Styles, res series.Result, ok bool, rc model.RenderConfig, g model.ChartGlobals, w, h int) string {
	const labelW = 10
	var b strings.Builder
	title := g.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, st.ChartTitle.Render(title)))
	b.WriteByte('\n')
	if g.YTitle != "" {
		b.WriteString(st.Label.Render(g.YTitle))
	}
	b.WriteByte('\n')

	legendH := 0
	if g.Legend && ok {
		legendH = len(res.Series)
	}
	cw, ch := w-labelW-1, h-5-legendH
	if cw < 4 || ch < 2 {
		return b.String() + st.Status.Render("window too small")
	}
	if !ok {
		res = series.Result{}
	}
	r := rasterize(res, g, cw, ch)
	styles := seriesStyles(rc, len(res.Series))
	for y := 0; y < ch; y++ {
		label := ""
		if y == 0 {
			label = formatTick(g.YMax)
		} else if y == ch-1 {
			label = formatTick(g.YMin)
		}
		b.WriteString(st.Axis.Render(fmt.Sprintf("%*s ", labelW, label)))
		for x := 0; x < cw; x++ {
			cell := string(r.cells[y][x])
			switch o := r.owner[y][x]; o {
			case cellEmpty:
				b.WriteString(cell)
			case cellGrid:
				b.WriteString(st.Grid.Render(cell))
			default:
				b.WriteString(styles[o].Render(cell))
			}
		}
		b.WriteByte('\n')
	}
	lo, hi := formatTick(g.XMin), formatTick(g.XMax)
	gap := cw - len(lo) - len(hi)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(st.Axis.Render(strings.Repeat(" ", labelW+1) + lo + strings.Repeat(" ", gap) + hi))
	b.WriteByte('\n')
	if g.XTitle != "" {
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, st.Label.Render(g.XTitle)))
	}
	if !ok {
		b.WriteByte('\n')
		b.WriteString(st.Status.Render("no series: select a file and set its columns"))
	}
	if legendH > 0 {
		for i, s := range res.Series {
			b.WriteByte('\n')
			b.WriteString(styles[i].Render(string(glyphs[i%len(glyphs)])) + " " + s.Label)
		}
	}
	return b.String()
}
