package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"snpview/internal/model"
	"snpview/internal/series"
)

// Format names an export encoding.
type Format string

const (
	CSV    Format = "csv"
	NDJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv":
		return CSV, nil
	case "json", "ndjson":
		return NDJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

var ErrNoSamples = errors.New("no samples")

var header = []string{"series", "row", "col", "freq", "re", "im"}

func WriteCSV(w io.Writer, samples []series.Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, s := range samples {
		row := []string{s.Series, strconv.Itoa(s.Row), strconv.Itoa(s.Col), num(s.Freq), num(s.Re), num(s.Im)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteNDJSON(w io.Writer, samples []series.Sample) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToFile writes samples to path in format f.
func ToFile(path string, f Format, samples []series.Sample) error {
	write := WriteNDJSON
	if f == CSV {
		write = WriteCSV
	}
	if f == CSV && len(samples) == 0 {
		return ErrNoSamples
	}
	out, err := os.Create(path)
	if err != nil {
		return &model.IoError{Path: path, Err: err}
	}
	if err := write(out, samples); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return &model.IoError{Path: path, Err: err}
	}
	return nil
}
