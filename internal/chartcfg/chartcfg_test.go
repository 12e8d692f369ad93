package chartcfg

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"snpview/internal/model"
)

func TestRoundTripNoFiles(t *testing.T) {
	in := Config{Globals: model.ChartGlobals{
		Title: "T", XTitle: "X", YTitle: "Y",
		XMin: 0, XMax: 10, YMin: -1, YMax: 1,
		XGrid: 5, YGrid: 5, Legend: true,
	}}
	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Globals != in.Globals {
		t.Fatalf("globals: %+v", out.Globals)
	}
	if len(out.Files) != 0 {
		t.Fatalf("files: %+v", out.Files)
	}
}

func TestRoundTripFiles(t *testing.T) {
	in := Config{
		Globals: model.ChartGlobals{Title: "Insertion loss", XMin: 1e9, XMax: 6.5e9, YMin: -0.25, YMax: 1.0000001, XGrid: 11, YGrid: 3},
		Files: []File{
			{Path: "/data/a b/dut.s2p", Columns: "[2,1],[1,1]", LineWidth: 3, LineColor: model.Color{R: 0xAB, G: 0x01, B: 0xFF}, Multiplier: 0.001},
			{Path: "filter.s4p", Columns: "", LineWidth: 1, LineColor: model.DefaultLineColor, Multiplier: 1},
		},
	}
	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip:\n got %+v\nwant %+v", out, in)
	}
}

func TestEncodeLayout(t *testing.T) {
	cfg := Config{
		Globals: model.ChartGlobals{Title: "T", XMax: 1, YMax: 1, XGrid: 5, YGrid: 4},
		Files:   []File{{Path: "a.s1p", Columns: "[1,1]", LineWidth: 2, LineColor: model.Color{R: 255}, Multiplier: 2.5}},
	}
	want := "T\n\n\n0\n1\n0\n1\n5\n4\n0\n1\na.s1p\n[1,1]\n2\n#ff0000\n2.5\n"
	if got := string(Encode(cfg)); got != want {
		t.Fatalf("encode:\n%q\nwant\n%q", got, want)
	}
}

func TestDecodeCompactTokens(t *testing.T) {
	data := "Title\r\nX\r\nY\r\n0 10 -1 1 5 5 1 1\r\n/tmp/x.s2p\r\n[1,1]\r\n2 #00FF00 1.5\r\n"
	cfg, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Globals.Title != "Title" || cfg.Globals.XMax != 10 || !cfg.Globals.Legend {
		t.Fatalf("globals: %+v", cfg.Globals)
	}
	if len(cfg.Files) != 1 {
		t.Fatalf("files: %+v", cfg.Files)
	}
	f := cfg.Files[0]
	if f.Path != "/tmp/x.s2p" || f.Columns != "[1,1]" || f.LineWidth != 2 || f.LineColor.Hex() != "#00ff00" || f.Multiplier != 1.5 {
		t.Fatalf("file: %+v", f)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"short globals":  "T\nX\nY\n0 1 0 1 5\n",
		"missing count":  "T\nX\nY\n0 1 0 1 5 5 0\n",
		"bad number":     "T\nX\nY\n0 one 0 1 5 5 0 0\n",
		"bad legend":     "T\nX\nY\n0 1 0 1 5 5 maybe 0\n",
		"negative count": "T\nX\nY\n0 1 0 1 5 5 0 -1\n",
		"short file":     "T\nX\nY\n0 1 0 1 5 5 0 1\na.s1p\n[1,1]\n1 #ffffff\n",
		"bad color":      "T\nX\nY\n0 1 0 1 5 5 0 1\na.s1p\n[1,1]\n1 blue 1\n",
		"trailing token": "T\nX\nY\n0 1 0 1 5 5 0 1 extra\na.s1p\n[1,1]\n1 #ffffff 1\n",
		"missing file":   "T\nX\nY\n0 1 0 1 5 5 0 2\na.s1p\n[1,1]\n1 #ffffff 1\n",
	}
	for name, data := range cases {
		_, err := Decode([]byte(data))
		var fe *model.FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s: expected FormatError, got %v", name, err)
		}
	}
}

func TestDecodeErrorNamesFile(t *testing.T) {
	_, err := Decode([]byte("T\nX\nY\n0 1 0 1 5 5 0 2\na.s1p\n\n1 #ffffff 1\nb.s1p\n\nx #ffffff 1\n"))
	var fe *model.FormatError
	if !errors.As(err, &fe) || fe.Record != 1 || !strings.Contains(fe.Error(), "line width") {
		t.Fatalf("error: %v", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "chart.cfg")
	in := Config{Globals: model.DefaultGlobals(), Files: []File{{Path: "x.s2p", LineWidth: 1, LineColor: model.DefaultLineColor, Multiplier: 1}}}
	if err := WriteFile(p, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("got %+v", out)
	}
	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.cfg"))
	var ioe *model.IoError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected IoError, got %v", err)
	}
}
