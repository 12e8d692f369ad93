package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown log level %q", s)
}

var (
	mu       sync.Mutex
	level    = Info
	buf      = make([]string, 0, 500)
	maxLines = 500
	// the TUI owns the terminal, so mirroring is off unless SNPVIEW_LOG_STDERR is set
	out     io.Writer
	colored bool
)

var tagColors = map[Level]*color.Color{
	Debug: color.New(color.FgHiBlack),
	Info:  color.New(color.FgCyan),
	Warn:  color.New(color.FgYellow),
	Error: color.New(color.FgRed, color.Bold),
}

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

func GetLevel() Level { mu.Lock(); defer mu.Unlock(); return level }

// SetOutput mirrors every kept line to w; nil turns mirroring off. Level tags
// are colored when w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	colored = false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// SetLevelFromEnv reads SNPVIEW_LOG_LEVEL and SNPVIEW_LOG_STDERR.
func SetLevelFromEnv() {
	if v := os.Getenv("SNPVIEW_LOG_LEVEL"); v != "" {
		if l, err := ParseLevel(v); err == nil {
			SetLevel(l)
		}
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("SNPVIEW_LOG_STDERR"))); v != "" {
		if v != "0" && v != "false" && v != "no" {
			SetOutput(os.Stderr)
		} else {
			SetOutput(nil)
		}
	}
}

func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Errorf(format string, a ...any) { logf(Error, format, a...) }

func logf(l Level, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	tag := fmt.Sprintf("%-5s", strings.ToUpper(l.String()))
	msg := fmt.Sprintf(format, a...)
	if len(buf) >= maxLines {
		copy(buf[0:], buf[1:])
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, ts+" "+tag+" "+msg)
	if out != nil {
		if colored {
			tag = tagColors[l].Sprint(tag)
		}
		fmt.Fprintln(out, ts, tag, msg)
	}
}

func Dump() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.Join(buf, "\n")
}

func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	lines := make([]string, len(buf))
	copy(lines, buf)
	return lines
}

// Reset drops every kept line.
func Reset() {
	mu.Lock()
	buf = buf[:0]
	mu.Unlock()
}
