package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"snpview/internal/model"
)

// Slot identifies one scalar field. Global slots live under the chart
// configuration node; file slots under each file node.
type Slot int

const (
	SlotTitle Slot = iota
	SlotXTitle
	SlotYTitle
	SlotXMin
	SlotXMax
	SlotYMin
	SlotYMax
	SlotXGrid
	SlotYGrid
	SlotLegend

	SlotName // display name heading a file node
	SlotPath
	SlotColumns
	SlotLineWidth
	SlotLineColor
	SlotMultiplier
	SlotZ0

	slotCount
)

// Kind is the value type of a slot. ReadField returns, and WriteField
// expects: string for KindText and KindColumns, float64 for KindReal, int for
// KindInt, bool for KindBool and model.Color for KindColor.
type Kind int

const (
	KindText Kind = iota
	KindReal
	KindInt
	KindBool
	KindColor
	KindColumns
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindReal:
		return "real"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindColor:
		return "color"
	case KindColumns:
		return "columns"
	}
	return "unknown"
}

// FieldSpec describes one slot.
type FieldSpec struct {
	Label    string
	Kind     Kind
	Editable bool
	Global   bool
	// Reproject marks fields whose change redraws the selected file.
	Reproject bool
	// Selects marks fields whose write makes the written file the selection.
	Selects bool

	getG func(g *model.ChartGlobals) any
	setG func(g *model.ChartGlobals, v any) error
	getF func(ds *model.Dataset, r *model.RenderConfig) any
	setF func(ds *model.Dataset, r *model.RenderConfig, v any) error
}

var fields = [slotCount]FieldSpec{
	SlotTitle: {Label: "Chart Title", Kind: KindText, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.Title },
		setG: func(g *model.ChartGlobals, v any) error { return setText(&g.Title, "Chart Title", v) }},
	SlotXTitle: {Label: "X-Title", Kind: KindText, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.XTitle },
		setG: func(g *model.ChartGlobals, v any) error { return setText(&g.XTitle, "X-Title", v) }},
	SlotYTitle: {Label: "Y-Title", Kind: KindText, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.YTitle },
		setG: func(g *model.ChartGlobals, v any) error { return setText(&g.YTitle, "Y-Title", v) }},
	SlotXMin: {Label: "Minimal X", Kind: KindReal, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.XMin },
		setG: func(g *model.ChartGlobals, v any) error { return setBelow(&g.XMin, g.XMax, "Minimal X", v) }},
	SlotXMax: {Label: "Maximal X", Kind: KindReal, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.XMax },
		setG: func(g *model.ChartGlobals, v any) error { return setAbove(&g.XMax, g.XMin, "Maximal X", v) }},
	SlotYMin: {Label: "Minimal Y", Kind: KindReal, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.YMin },
		setG: func(g *model.ChartGlobals, v any) error { return setBelow(&g.YMin, g.YMax, "Minimal Y", v) }},
	SlotYMax: {Label: "Maximal Y", Kind: KindReal, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.YMax },
		setG: func(g *model.ChartGlobals, v any) error { return setAbove(&g.YMax, g.YMin, "Maximal Y", v) }},
	SlotXGrid: {Label: "X Grid Number", Kind: KindInt, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.XGrid },
		setG: func(g *model.ChartGlobals, v any) error { return setPositive(&g.XGrid, "X Grid Number", v) }},
	SlotYGrid: {Label: "Y Grid Number", Kind: KindInt, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.YGrid },
		setG: func(g *model.ChartGlobals, v any) error { return setPositive(&g.YGrid, "Y Grid Number", v) }},
	SlotLegend: {Label: "Show Legend", Kind: KindBool, Editable: true, Global: true,
		getG: func(g *model.ChartGlobals) any { return g.Legend },
		setG: func(g *model.ChartGlobals, v any) error {
			b, ok := v.(bool)
			if !ok {
				return typeError("Show Legend", KindBool, v)
			}
			g.Legend = b
			return nil
		}},

	SlotName: {Label: "Name", Kind: KindText,
		getF: func(ds *model.Dataset, _ *model.RenderConfig) any { return ds.Name() }},
	SlotPath: {Label: "Path", Kind: KindText,
		getF: func(ds *model.Dataset, _ *model.RenderConfig) any { return ds.FilePath }},
	SlotColumns: {Label: "Columns", Kind: KindColumns, Editable: true, Reproject: true, Selects: true,
		getF: func(_ *model.Dataset, r *model.RenderConfig) any { return model.FormatColumns(r.Columns) },
		setF: setColumns},
	SlotLineWidth: {Label: "Line Width", Kind: KindInt, Editable: true, Reproject: true,
		getF: func(_ *model.Dataset, r *model.RenderConfig) any { return r.LineWidth },
		setF: func(_ *model.Dataset, r *model.RenderConfig, v any) error {
			return setPositive(&r.LineWidth, "Line Width", v)
		}},
	SlotLineColor: {Label: "Line Color", Kind: KindColor, Editable: true, Reproject: true,
		getF: func(_ *model.Dataset, r *model.RenderConfig) any { return r.LineColor },
		setF: func(_ *model.Dataset, r *model.RenderConfig, v any) error {
			c, ok := v.(model.Color)
			if !ok {
				return typeError("Line Color", KindColor, v)
			}
			r.LineColor = c
			return nil
		}},
	SlotMultiplier: {Label: "Multiplier", Kind: KindReal, Editable: true, Reproject: true,
		getF: func(_ *model.Dataset, r *model.RenderConfig) any { return r.Multiplier },
		setF: func(_ *model.Dataset, r *model.RenderConfig, v any) error {
			f, err := asReal("Multiplier", v)
			if err != nil {
				return err
			}
			r.Multiplier = f
			return nil
		}},
	SlotZ0: {Label: "Z0", Kind: KindReal,
		getF: func(ds *model.Dataset, _ *model.RenderConfig) any { return ds.Z0 }},
}

// Spec returns the schema entry of s.
func Spec(s Slot) (FieldSpec, bool) {
	if s < 0 || s >= slotCount {
		return FieldSpec{}, false
	}
	return fields[s], true
}

// GlobalSlots lists the chart configuration fields in display order.
func GlobalSlots() []Slot {
	return []Slot{SlotTitle, SlotXTitle, SlotYTitle, SlotXMin, SlotXMax, SlotYMin, SlotYMax, SlotXGrid, SlotYGrid, SlotLegend}
}

// FileSlots lists the children of a file node in display order.
func FileSlots() []Slot {
	return []Slot{SlotPath, SlotColumns, SlotLineWidth, SlotLineColor, SlotMultiplier, SlotZ0}
}

func (s Slot) String() string {
	if sp, ok := Spec(s); ok {
		return sp.Label
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

func typeError(field string, k Kind, v any) error {
	return &model.ValidationError{Field: field, Msg: fmt.Sprintf("expected %s value, got %T", k, v)}
}

func setText(dst *string, field string, v any) error {
	s, ok := v.(string)
	if !ok {
		return typeError(field, KindText, v)
	}
	*dst = s
	return nil
}

func asReal(field string, v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0, typeError(field, KindReal, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &model.ValidationError{Field: field, Msg: "must be a finite number"}
	}
	return f, nil
}

func setBelow(dst *float64, limit float64, field string, v any) error {
	f, err := asReal(field, v)
	if err != nil {
		return err
	}
	if f >= limit {
		return &model.ValidationError{Field: field, Msg: fmt.Sprintf("must be below %g", limit)}
	}
	*dst = f
	return nil
}

func setAbove(dst *float64, limit float64, field string, v any) error {
	f, err := asReal(field, v)
	if err != nil {
		return err
	}
	if f <= limit {
		return &model.ValidationError{Field: field, Msg: fmt.Sprintf("must be above %g", limit)}
	}
	*dst = f
	return nil
}

func setPositive(dst *int, field string, v any) error {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case int32:
		n = int(t)
	default:
		return typeError(field, KindInt, v)
	}
	if n < 1 {
		return &model.ValidationError{Field: field, Msg: "must be at least 1"}
	}
	*dst = n
	return nil
}

func setColumns(ds *model.Dataset, r *model.RenderConfig, v any) error {
	s, ok := v.(string)
	if !ok {
		return typeError("Columns", KindColumns, v)
	}
	cols := model.ParseColumns(s)
	for _, c := range cols {
		if _, err := ds.Index(c); err != nil {
			return &model.ValidationError{Field: "Columns", Msg: err.Error()}
		}
	}
	r.Columns = cols
	return nil
}

// ParseText converts editor text into a value of kind k.
func ParseText(k Kind, text string) (any, error) {
	switch k {
	case KindText, KindColumns:
		return text, nil
	case KindReal:
		return strconv.ParseFloat(strings.TrimSpace(text), 64)
	case KindInt:
		return strconv.Atoi(strings.TrimSpace(text))
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "1", "true", "yes", "on", "y":
			return true, nil
		case "0", "false", "no", "off", "n":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", text)
	case KindColor:
		return model.ParseColor(text)
	}
	return nil, fmt.Errorf("unknown kind %d", k)
}

// FormatValue renders a slot value for a text editor; ParseText reverses it.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case model.Color:
		return t.Hex()
	}
	return fmt.Sprint(v)
}
