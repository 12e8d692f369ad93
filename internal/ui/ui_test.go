package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"snpview/internal/app"
	"snpview/internal/config"
	"snpview/internal/model"
	"snpview/internal/series"
	"snpview/internal/tree"
)

func TestRasterizeDiagonal(t *testing.T) {
	res := series.Result{Series: []series.Series{{
		Label:  "S11",
		Points: []series.Point{{X: 0, Y: 0}, {X: 4, Y: 4}},
	}}}
	g := model.ChartGlobals{XMin: 0, XMax: 4, YMin: 0, YMax: 4, XGrid: 1, YGrid: 1}
	r := rasterize(res, g, 5, 5)
	for i := 0; i < 5; i++ {
		if r.owner[4-i][i] != 0 || r.cells[4-i][i] != '•' {
			t.Fatalf("cell (%d,%d) = %q owner %d", i, 4-i, r.cells[4-i][i], r.owner[4-i][i])
		}
	}
	if r.owner[0][0] != cellGrid {
		t.Fatalf("grid corner: %d", r.owner[0][0])
	}
	if r.owner[2][1] != cellEmpty {
		t.Fatalf("interior should be empty, got %d", r.owner[2][1])
	}
}

func TestRasterizeClips(t *testing.T) {
	res := series.Result{Series: []series.Series{{
		Points: []series.Point{{X: -10, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 99}},
	}}}
	g := model.DefaultGlobals()
	r := rasterize(res, g, 11, 11)
	var drawn int
	for y := range r.owner {
		for x := range r.owner[y] {
			if r.owner[y][x] == 0 {
				drawn++
			}
		}
	}
	if drawn != 1 || r.owner[5][5] != 0 {
		t.Fatalf("expected only the inside point, drawn=%d", drawn)
	}
}

func TestClampScroll(t *testing.T) {
	cases := []struct{ cursor, offset, height, n, want int }{
		{0, 0, 5, 20, 0},
		{7, 0, 5, 20, 3},
		{2, 6, 5, 20, 2},
		{19, 0, 5, 20, 15},
		{3, 10, 5, 4, 0},
	}
	for _, c := range cases {
		if got := clampScroll(c.cursor, c.offset, c.height, c.n); got != c.want {
			t.Errorf("%+v: got %d", c, got)
		}
	}
}

func TestKeyLabel(t *testing.T) {
	km := DefaultKeyMap()
	if keyLabel(km.Select) != "space" || keyLabel(km.Edit) != "enter" || keyLabel(km.Add) != "a" {
		t.Fatalf("labels: %q %q %q", keyLabel(km.Select), keyLabel(km.Edit), keyLabel(km.Add))
	}
}

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "dut.s2p")
	body := "# GHZ S RI R 50\n1 0.1 0 0.2 0 0.3 0 0.4 0\n2 0.5 0 0.6 0 0.7 0 0.8 0\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.NoSession = true
	cfg.Files = []string{p}
	a, err := app.New(cfg)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	m := initialModel(context.Background(), a)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, dir
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBuildRows(t *testing.T) {
	m, _ := newTestModel(t)
	rows := buildRows(m.tr)
	want := 1 + len(tree.GlobalSlots()) + 1 + len(tree.FileSlots())
	if len(rows) != want {
		t.Fatalf("rows: %d, want %d", len(rows), want)
	}
	i := fileRow(rows, 0)
	if i != 1+len(tree.GlobalSlots()) || rows[i].label != "dut.s2p" || !rows[i].header {
		t.Fatalf("file row %d: %+v", i, rows[i])
	}
	if m.cursor != i {
		t.Fatalf("cursor should start on the selected file, got %d", m.cursor)
	}
}

func TestEditColumnsFromTree(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = fileRow(m.rows, 0) + 2 // Path, then Columns
	if m.rows[m.cursor].addr.Slot != tree.SlotColumns {
		t.Fatalf("row: %+v", m.rows[m.cursor])
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.inlineMode != inlineEdit {
		t.Fatal("enter should open the editor")
	}
	typeText(m, "[2,1]")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.inlineMode != inlineNone || m.lastErr {
		t.Fatalf("edit failed: %q", m.lastMsg)
	}
	res, ok := m.tr.CurrentSeries()
	if !ok || res.Series[0].Label != "S21" {
		t.Fatalf("series: %+v", res)
	}
	if v := m.View(); !strings.Contains(v, "dut.s2p") {
		t.Fatal("view misses the file node")
	}
}

func TestRejectedEditReported(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = 1 + int(tree.SlotXMin) // globals follow the header in slot order
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("5")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.lastErr || !strings.HasPrefix(m.lastMsg, "rejected") {
		t.Fatalf("status: %q", m.lastMsg)
	}
	if m.tr.Globals().XMin != 0 {
		t.Fatal("xMin changed")
	}
}

func TestSaveRemoveLoad(t *testing.T) {
	m, dir := newTestModel(t)
	cfgPath := filepath.Join(dir, "chart.cfg")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m.input.SetValue(cfgPath)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.lastErr {
		t.Fatalf("save: %s", m.lastMsg)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if m.tr.Len() != 0 || m.tr.Selected() != -1 {
		t.Fatalf("remove: len=%d selected=%d", m.tr.Len(), m.tr.Selected())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if m.input.Value() != cfgPath {
		t.Fatalf("load prompt should offer the last path, got %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.lastErr || m.tr.Len() != 1 {
		t.Fatalf("load: %s len=%d", m.lastMsg, m.tr.Len())
	}
}

func TestEscapeCancelsPrompt(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	typeText(m, "nope.s2p")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.inlineMode != inlineNone || m.tr.Len() != 1 {
		t.Fatalf("mode=%d len=%d", m.inlineMode, m.tr.Len())
	}
}

func TestHelpModalRunsShortcut(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.modalActive || m.modalKind != modalHelp {
		t.Fatal("help should open")
	}
	_ = m.View()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.modalActive || cmd == nil {
		t.Fatal("enter should close help and replay the shortcut")
	}
}

func TestAddPromptWalksRecentFiles(t *testing.T) {
	dir := t.TempDir()
	body := "# GHZ S RI R 50\n1 0.1 0 0.2 0 0.3 0 0.4 0\n"
	a := filepath.Join(dir, "a.s2p")
	b := filepath.Join(dir, "b.s2p")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.Default()
	cfg.SessionDir = t.TempDir()
	cfg.Files = []string{a}
	ap, err := app.New(cfg)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	m := initialModel(context.Background(), ap)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	typeText(m, b)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.lastErr || m.tr.Len() != 2 {
		t.Fatalf("add: %s len=%d", m.lastMsg, m.tr.Len())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, b},
		{tea.KeyUp, a},
		{tea.KeyUp, a},
		{tea.KeyDown, b},
		{tea.KeyDown, ""},
	}
	for i, s := range steps {
		m.Update(tea.KeyMsg{Type: s.key})
		if got := m.input.Value(); got != s.want {
			t.Fatalf("step %d: got %q, want %q", i, got, s.want)
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.recent != nil || m.input.ShowSuggestions {
		t.Fatal("recent files should be dropped with the prompt")
	}
}
