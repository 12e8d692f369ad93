package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snpview/internal/series"
)

var samples = []series.Sample{
	{Series: "S11", Row: 1, Col: 1, Freq: 1e9, Re: 0.1, Im: -0.25},
	{Series: "S21", Row: 2, Col: 1, Freq: 2.5e9, Re: 1, Im: 0},
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	if err := WriteCSV(&b, samples); err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "series,row,col,freq,re,im\nS11,1,1,1e+09,0.1,-0.25\nS21,2,1,2.5e+09,1,0\n"
	if b.String() != want {
		t.Fatalf("got\n%s", b.String())
	}
	if err := WriteCSV(&b, nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("empty: %v", err)
	}
}

func TestWriteNDJSON(t *testing.T) {
	var b bytes.Buffer
	if err := WriteNDJSON(&b, samples); err != nil {
		t.Fatalf("json: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || lines[0] != `{"series":"S11","row":1,"col":1,"freq":1000000000,"re":0.1,"im":-0.25}` {
		t.Fatalf("got %q", lines)
	}
}

func TestToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	if err := ToFile(p, CSV, samples); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil || !strings.HasPrefix(string(data), "series,") {
		t.Fatalf("read: %q %v", data, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected format error")
	}
	if f, _ := ParseFormat("ndjson"); f != NDJSON {
		t.Fatalf("format: %v", f)
	}
}
