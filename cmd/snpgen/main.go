// Command snpgen writes synthetic Touchstone files for trying out snpview.
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"snpview/internal/parse"
)

type options struct {
	ports    int
	points   int
	start    float64
	stop     float64
	unit     string
	z0       float64
	loss     float64 // transmission loss in dB at stop
	match    float64 // reflection magnitude
	delay    float64 // seconds, scaled by unit
	noise    float64
	perLine  int // values per data line; 0 keeps a record on one line
	seed     int64
	comments []string
}

func main() {
	o := options{}
	var outPath string
	var toStdout bool

	fs := pflag.NewFlagSet("snpgen", pflag.ExitOnError)
	fs.IntVarP(&o.ports, "ports", "n", 2, "number of ports")
	fs.IntVar(&o.points, "points", 201, "frequency points")
	fs.Float64Var(&o.start, "start", 0.1, "start frequency, in --unit")
	fs.Float64Var(&o.stop, "stop", 6, "stop frequency, in --unit")
	fs.StringVar(&o.unit, "unit", "GHZ", "frequency unit: HZ|KHZ|MHZ|GHZ")
	fs.Float64Var(&o.z0, "z0", 50, "reference impedance")
	fs.Float64Var(&o.loss, "loss", 3, "insertion loss at the stop frequency (dB)")
	fs.Float64Var(&o.match, "match", 0.1, "reflection magnitude")
	fs.Float64Var(&o.delay, "delay", 0.5, "electrical delay, in 1/--unit")
	fs.Float64Var(&o.noise, "noise", 0.002, "uniform noise added to each part")
	fs.IntVar(&o.perLine, "per-line", 0, "wrap records after this many values (0: one record per line)")
	fs.Int64Var(&o.seed, "seed", 1, "random seed")
	fs.StringArrayVar(&o.comments, "comment", nil, "header comment (repeatable)")
	fs.StringVarP(&outPath, "out", "o", "", "output path (default simulateddata/demo.s<N>p)")
	fs.BoolVar(&toStdout, "stdout", false, "write to stdout instead of a file")
	_ = fs.Parse(os.Args[1:])

	if err := o.validate(); err != nil {
		fmt.Fprintln(os.Stderr, "snpgen:", err)
		os.Exit(2)
	}

	if toStdout {
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		if err := generate(w, o); err != nil {
			fmt.Fprintln(os.Stderr, "snpgen:", err)
			os.Exit(1)
		}
		return
	}

	if outPath == "" {
		if err := os.MkdirAll("simulateddata", 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create simulateddata: %v\n", err)
			os.Exit(1)
		}
		outPath = filepath.Join("simulateddata", fmt.Sprintf("demo.s%dp", o.ports))
	}
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	w := bufio.NewWriter(f)
	if err := generate(w, o); err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(outPath)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d-port, %d points -> %s\n", o.ports, o.points, outPath)
}

func (o options) validate() error {
	switch {
	case o.ports < 1 || o.ports > parse.MaxPorts:
		return fmt.Errorf("--ports must be in 1..%d", parse.MaxPorts)
	case o.points < 1:
		return fmt.Errorf("--points must be at least 1")
	case o.stop < o.start:
		return fmt.Errorf("--stop must not be below --start")
	case o.perLine < 0:
		return fmt.Errorf("--per-line must not be negative")
	}
	switch strings.ToUpper(o.unit) {
	case "HZ", "KHZ", "MHZ", "GHZ":
	default:
		return fmt.Errorf("unsupported unit %q", o.unit)
	}
	return nil
}

// sample is the model value of entry (r,c) at frequency f: a delayed, lossy
// through path off the diagonal and a rotating reflection on it.
func sample(o options, r, c int, f float64) complex128 {
	phase := -2 * math.Pi * f * o.delay
	if r == c {
		return cmplx.Rect(o.match, phase*2)
	}
	frac := 1.0
	if o.stop > 0 {
		frac = math.Sqrt(f / o.stop)
	}
	mag := math.Pow(10, -o.loss*frac/20)
	// couplings farther from the neighbour port are weaker
	if d := r - c; d > 1 || d < -1 {
		mag /= float64(d * d)
	}
	return cmplx.Rect(mag, phase)
}

func generate(w io.Writer, o options) error {
	rng := rand.New(rand.NewSource(o.seed))
	noise := func() float64 { return (rng.Float64()*2 - 1) * o.noise }
	for _, c := range o.comments {
		if _, err := fmt.Fprintf(w, "! %s\n", c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "# %s S RI R %g\n", strings.ToUpper(o.unit), o.z0); err != nil {
		return err
	}
	for i := 0; i < o.points; i++ {
		f := o.start
		if o.points > 1 {
			f = o.start + (o.stop-o.start)*float64(i)/float64(o.points-1)
		}
		vals := []string{fmt.Sprintf("%g", f)}
		for r := 1; r <= o.ports; r++ {
			for c := 1; c <= o.ports; c++ {
				s := sample(o, r, c, f)
				vals = append(vals, fmt.Sprintf("%.6f", real(s)+noise()), fmt.Sprintf("%.6f", imag(s)+noise()))
			}
		}
		if err := writeRecord(w, vals, o.perLine); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, vals []string, perLine int) error {
	if perLine <= 0 {
		perLine = len(vals)
	}
	for len(vals) > 0 {
		n := min(perLine, len(vals))
		if _, err := fmt.Fprintln(w, strings.Join(vals[:n], " ")); err != nil {
			return err
		}
		vals = vals[n:]
	}
	return nil
}
