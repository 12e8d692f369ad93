// Package tree holds the editable chart model: global chart settings plus
// one node per loaded measurement file, addressed by (entry, slot).
//
// A Tree is not safe for concurrent use; callers serialise mutations.
package tree

import (
	"fmt"

	"snpview/internal/chartcfg"
	"snpview/internal/model"
	"snpview/internal/parse"
	"snpview/internal/series"
	"snpview/internal/util/logx"
)

// Global is the Entry value of addresses under the chart configuration node.
const Global = -1

// Address points at one scalar field.
type Address struct {
	Entry int
	Slot  Slot
}

func GlobalAddr(s Slot) Address     { return Address{Entry: Global, Slot: s} }
func FileAddr(i int, s Slot) Address { return Address{Entry: i, Slot: s} }

func (a Address) String() string {
	if a.Entry == Global {
		return "config/" + a.Slot.String()
	}
	return fmt.Sprintf("file[%d]/%s", a.Entry, a.Slot)
}

type EventKind int

const (
	// Inserted: a file node was added at Index.
	Inserted EventKind = iota
	// Removed: the file node at Index was removed; later nodes shifted down.
	Removed
	// Changed: the value at Address changed.
	Changed
	// SeriesChanged: CurrentSeries has been recomputed.
	SeriesChanged
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	case SeriesChanged:
		return "series"
	}
	return "unknown"
}

type Event struct {
	Kind    EventKind
	Index   int
	Address Address
}

// Entry is one loaded file and its presentation settings.
type Entry struct {
	Dataset *model.Dataset
	Render  model.RenderConfig
}

type subscriber struct {
	id int
	fn func(Event)
}

type Tree struct {
	globals  model.ChartGlobals
	entries  []*Entry
	selected int

	current series.Result

	subs   []subscriber
	nextID int

	defaultColor model.Color
	autoRange    bool
	parseFile    func(string) (*model.Dataset, error)
}

type Option func(*Tree)

// WithDefaultColor sets the line color given to newly added files.
func WithDefaultColor(c model.Color) Option { return func(t *Tree) { t.defaultColor = c } }

// WithAutoRange controls whether the axes follow the bounds of the selected
// file's series after every redraw. On by default.
func WithAutoRange(on bool) Option { return func(t *Tree) { t.autoRange = on } }

// WithParser replaces the measurement file reader.
func WithParser(fn func(string) (*model.Dataset, error)) Option {
	return func(t *Tree) { t.parseFile = fn }
}

func New(opts ...Option) *Tree {
	t := &Tree{
		globals:      model.DefaultGlobals(),
		selected:     -1,
		defaultColor: model.DefaultLineColor,
		autoRange:    true,
		parseFile:    parse.ParseFile,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Subscribe registers fn for every subsequent event, delivered synchronously
// in order. The returned func unregisters it.
func (t *Tree) Subscribe(fn func(Event)) (cancel func()) {
	id := t.nextID
	t.nextID++
	t.subs = append(t.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

func (t *Tree) emit(ev Event) {
	for _, s := range t.subs {
		s.fn(ev)
	}
}

func (t *Tree) Len() int { return len(t.entries) }

// Selected returns the index of the file being rendered, or -1.
func (t *Tree) Selected() int { return t.selected }

// Globals returns a copy of the chart settings.
func (t *Tree) Globals() model.ChartGlobals { return t.globals }

// Entry returns a copy of entry i. The dataset is shared and read-only.
func (t *Tree) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, &model.RangeError{What: "file", Index: i, Len: len(t.entries)}
	}
	e := *t.entries[i]
	e.Render.Columns = append([]model.Column(nil), e.Render.Columns...)
	return e, nil
}

// IndexOf returns the entry loaded from path, or -1.
func (t *Tree) IndexOf(path string) int {
	for i, e := range t.entries {
		if e.Dataset.FilePath == path {
			return i
		}
	}
	return -1
}

// AddFile loads path and selects it. A path that is already loaded is only
// selected again.
func (t *Tree) AddFile(path string) error {
	if i := t.IndexOf(path); i >= 0 {
		t.selected = i
		t.reproject()
		return nil
	}
	ds, err := t.parseFile(path)
	if err != nil {
		return err
	}
	t.entries = append(t.entries, &Entry{Dataset: ds, Render: model.DefaultRenderConfig(t.defaultColor)})
	idx := len(t.entries) - 1
	t.selected = idx
	logx.Infof("tree: added %s as file %d", path, idx)
	t.emit(Event{Kind: Inserted, Index: idx})
	t.emit(Event{Kind: Changed, Index: idx, Address: FileAddr(idx, SlotName)})
	t.reproject()
	return nil
}

// RemoveFile drops entry i. When the selection pointed at the last entry it
// moves to the new last one.
func (t *Tree) RemoveFile(i int) error {
	if i < 0 || i >= len(t.entries) {
		return &model.RangeError{What: "file", Index: i, Len: len(t.entries)}
	}
	path := t.entries[i].Dataset.FilePath
	t.entries[i] = nil
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	logx.Infof("tree: removed %s (file %d)", path, i)
	t.emit(Event{Kind: Removed, Index: i})
	if t.selected == len(t.entries) {
		t.selected--
	}
	t.reproject()
	return nil
}

// Select makes entry i the rendered file.
func (t *Tree) Select(i int) error {
	if i < 0 || i >= len(t.entries) {
		return &model.RangeError{What: "file", Index: i, Len: len(t.entries)}
	}
	t.selected = i
	t.emit(Event{Kind: Changed, Index: i, Address: FileAddr(i, SlotName)})
	t.reproject()
	return nil
}

// Clear removes every file and resets both axis ranges to [0,1].
func (t *Tree) Clear() {
	for len(t.entries) > 0 {
		_ = t.RemoveFile(0)
	}
	t.globals.XMin, t.globals.XMax = 0, 1
	t.globals.YMin, t.globals.YMax = 0, 1
	t.emitRange()
}

func (t *Tree) spec(a Address) (FieldSpec, error) {
	sp, ok := Spec(a.Slot)
	if !ok {
		return FieldSpec{}, &model.RangeError{What: "slot", Index: int(a.Slot), Len: int(slotCount)}
	}
	if a.Entry == Global {
		if !sp.Global {
			return FieldSpec{}, &model.RangeError{What: "global slot", Index: int(a.Slot), Len: int(SlotName)}
		}
		return sp, nil
	}
	if a.Entry < 0 || a.Entry >= len(t.entries) {
		return FieldSpec{}, &model.RangeError{What: "file", Index: a.Entry, Len: len(t.entries)}
	}
	if sp.Global {
		return FieldSpec{}, &model.RangeError{What: "file slot", Index: int(a.Slot), Len: int(slotCount)}
	}
	return sp, nil
}

// ReadField returns the value at a. See Kind for the Go types returned.
func (t *Tree) ReadField(a Address) (any, error) {
	sp, err := t.spec(a)
	if err != nil {
		return nil, err
	}
	if sp.Global {
		return sp.getG(&t.globals), nil
	}
	e := t.entries[a.Entry]
	return sp.getF(e.Dataset, &e.Render), nil
}

// WriteField stores v at a. A *model.ValidationError means the write was
// rejected and nothing changed; a *model.RangeError means a is invalid.
func (t *Tree) WriteField(a Address, v any) error {
	sp, err := t.spec(a)
	if err != nil {
		return err
	}
	if !sp.Editable {
		return t.reject(a, &model.ValidationError{Field: sp.Label, Msg: "read-only"})
	}
	if sp.Global {
		g := t.globals
		if err := sp.setG(&g, v); err != nil {
			return t.reject(a, err)
		}
		t.globals = g
	} else {
		e := t.entries[a.Entry]
		r := e.Render
		if err := sp.setF(e.Dataset, &r, v); err != nil {
			return t.reject(a, err)
		}
		e.Render = r
		if sp.Selects {
			t.selected = a.Entry
		}
	}
	t.emit(Event{Kind: Changed, Index: a.Entry, Address: a})
	if sp.Reproject {
		t.reproject()
	}
	return nil
}

// WriteFieldText parses text according to the slot's kind and writes it.
// Unparsable text is a rejection.
func (t *Tree) WriteFieldText(a Address, text string) error {
	sp, err := t.spec(a)
	if err != nil {
		return err
	}
	v, err := ParseText(sp.Kind, text)
	if err != nil {
		return t.reject(a, &model.ValidationError{Field: sp.Label, Msg: err.Error()})
	}
	return t.WriteField(a, v)
}

func (t *Tree) reject(a Address, err error) error {
	logx.Debugf("tree: rejected write to %s: %v", a, err)
	return err
}

// SetGlobals replaces every chart setting at once, so ranges that would be
// rejected one field at a time can still be applied.
func (t *Tree) SetGlobals(g model.ChartGlobals) error {
	switch {
	case !(g.XMin < g.XMax):
		return &model.ValidationError{Field: "Minimal X", Msg: fmt.Sprintf("must be below %g", g.XMax)}
	case !(g.YMin < g.YMax):
		return &model.ValidationError{Field: "Minimal Y", Msg: fmt.Sprintf("must be below %g", g.YMax)}
	case g.XGrid < 1:
		return &model.ValidationError{Field: "X Grid Number", Msg: "must be at least 1"}
	case g.YGrid < 1:
		return &model.ValidationError{Field: "Y Grid Number", Msg: "must be at least 1"}
	}
	t.globals = g
	for _, s := range GlobalSlots() {
		t.emit(Event{Kind: Changed, Index: Global, Address: GlobalAddr(s)})
	}
	return nil
}

// CurrentSeries returns a copy of the curves of the selected file. ok is
// false when there is nothing to draw.
func (t *Tree) CurrentSeries() (res series.Result, ok bool) {
	if t.selected < 0 || t.current.Empty() {
		return series.Result{}, false
	}
	return t.current.Clone(), true
}

// SelectedRender returns the presentation settings of the selected file.
func (t *Tree) SelectedRender() (model.RenderConfig, bool) {
	if t.selected < 0 {
		return model.RenderConfig{}, false
	}
	return t.entries[t.selected].Render, true
}

func (t *Tree) reproject() {
	t.current = series.Result{}
	defer t.emit(Event{Kind: SeriesChanged, Index: t.selected})
	if t.selected < 0 || len(t.entries) == 0 {
		return
	}
	e := t.entries[t.selected]
	res, err := series.Project(e.Dataset, e.Render.Columns)
	if err != nil {
		// columns are validated on write, so this means a broken dataset
		logx.Errorf("tree: projecting %s: %v", e.Dataset.FilePath, err)
		return
	}
	t.current = res
	if t.autoRange && !res.Bounds.Degenerate() {
		b := res.Bounds
		t.globals.XMin, t.globals.XMax = b.XMin, b.XMax
		t.globals.YMin, t.globals.YMax = b.YMin, b.YMax
		t.emitRange()
	}
}

func (t *Tree) emitRange() {
	for _, s := range []Slot{SlotXMin, SlotXMax, SlotYMin, SlotYMax} {
		t.emit(Event{Kind: Changed, Index: Global, Address: GlobalAddr(s)})
	}
}

// Config snapshots the tree as a saveable configuration.
func (t *Tree) Config() chartcfg.Config {
	cfg := chartcfg.Config{Globals: t.globals}
	for _, e := range t.entries {
		cfg.Files = append(cfg.Files, chartcfg.File{
			Path:       e.Dataset.FilePath,
			Columns:    model.FormatColumns(e.Render.Columns),
			LineWidth:  e.Render.LineWidth,
			LineColor:  e.Render.LineColor,
			Multiplier: e.Render.Multiplier,
		})
	}
	return cfg
}

// ExportConfig encodes the current configuration.
func (t *Tree) ExportConfig() []byte { return chartcfg.Encode(t.Config()) }

// ImportConfig decodes data and applies it: every file is loaded (or
// reselected) and its settings written, then the chart settings are applied
// so saved ranges win over auto-ranging. Decoding errors leave the tree
// untouched; the first file that fails to load or validate stops the import.
func (t *Tree) ImportConfig(data []byte) error {
	cfg, err := chartcfg.Decode(data)
	if err != nil {
		return err
	}
	return t.Apply(cfg)
}

// Apply loads an already decoded configuration.
func (t *Tree) Apply(cfg chartcfg.Config) error {
	for _, f := range cfg.Files {
		if err := t.AddFile(f.Path); err != nil {
			return fmt.Errorf("loading %s: %w", f.Path, err)
		}
		i := t.IndexOf(f.Path)
		writes := []struct {
			slot Slot
			v    any
		}{
			{SlotLineWidth, f.LineWidth},
			{SlotLineColor, f.LineColor},
			{SlotMultiplier, f.Multiplier},
			{SlotColumns, f.Columns},
		}
		for _, w := range writes {
			if err := t.WriteField(FileAddr(i, w.slot), w.v); err != nil {
				return fmt.Errorf("loading %s: %w", f.Path, err)
			}
		}
	}
	return t.SetGlobals(cfg.Globals)
}
