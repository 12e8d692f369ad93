package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	"snpview/internal/export"
	"snpview/internal/model"
	"snpview/internal/util/logx"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	Files        []string
	ConfigPath   string
	Columns      string
	Theme        Theme
	LineColor    string
	ExportFormat string
	ExportOut    string
	Where        string
	Series       string
	NoSession    bool
	SessionDir   string
	LogLevel     string
	NoAutoRange  bool

	// Internal
	IsTerminal bool
}

// Default returns a Config seeded from the environment.
func Default() *Config {
	return &Config{
		Theme:      Theme(getenvDefault("SNPVIEW_THEME", string(ThemeDark))),
		LineColor:  getenvDefault("SNPVIEW_LINE_COLOR", model.DefaultLineColor.Hex()),
		SessionDir: getenvDefault("SNPVIEW_SESSION_DIR", ""),
		LogLevel:   getenvDefault("SNPVIEW_LOG_LEVEL", "info"),
		IsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// BindFlags registers every option on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.Files, "file", "f", c.Files, "Touchstone file to load (repeatable)")
	fs.StringVarP(&c.ConfigPath, "config", "c", c.ConfigPath, "chart configuration to load")
	fs.StringVar(&c.Columns, "columns", c.Columns, `column list applied to the selected file, e.g. "[1,1],[2,1]"`)
	fs.StringVar((*string)(&c.Theme), "theme", string(c.Theme), "theme: dark|light")
	fs.StringVar(&c.LineColor, "line-color", c.LineColor, "line color of newly added files (#rrggbb)")
	fs.StringVar(&c.ExportFormat, "export", c.ExportFormat, "export plotted samples: csv|json")
	fs.StringVarP(&c.ExportOut, "out", "o", c.ExportOut, "output path for export")
	fs.StringVar(&c.Where, "where", c.Where, `sample filter expression, e.g. "freq > 1e9 && db < -3"`)
	fs.StringVar(&c.Series, "series", c.Series, "only export series whose label contains this (or matches /regex/)")
	fs.BoolVar(&c.NoSession, "no-session", c.NoSession, "do not restore or save the last session")
	fs.StringVar(&c.SessionDir, "session-dir", c.SessionDir, "session directory (default: user config dir)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug|info|warn|error")
	fs.BoolVar(&c.NoAutoRange, "no-auto-range", c.NoAutoRange, "keep axis ranges when series change")
}

// Finish validates c and expands paths. It also applies the log level.
func (c *Config) Finish() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (want dark or light)", c.Theme)
	}
	if _, err := model.ParseColor(c.LineColor); err != nil {
		return fmt.Errorf("--line-color: %w", err)
	}
	if c.ExportFormat != "" {
		if _, err := export.ParseFormat(c.ExportFormat); err != nil {
			return err
		}
		if c.ExportOut == "" {
			return errors.New("--export requires --out path")
		}
	}
	lv, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logx.SetLevel(lv)

	for i, f := range c.Files {
		if c.Files[i], err = homedir.Expand(f); err != nil {
			return err
		}
	}
	for _, p := range []*string{&c.ConfigPath, &c.ExportOut, &c.SessionDir} {
		if *p, err = homedir.Expand(*p); err != nil {
			return err
		}
	}
	return nil
}

// DefaultColor is the parsed LineColor; call after Finish.
func (c *Config) DefaultColor() model.Color {
	col, err := model.ParseColor(c.LineColor)
	if err != nil {
		return model.DefaultLineColor
	}
	return col
}

// Headless reports whether the run should skip the TUI.
func (c *Config) Headless() bool { return c.ExportFormat != "" || !c.IsTerminal }

func getenvDefault(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func (c *Config) String() string {
	return fmt.Sprintf("files=%v config=%s theme=%s export=%s session=%v", c.Files, c.ConfigPath, c.Theme, c.ExportFormat, !c.NoSession)
}
