package config

import (
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	"snpview/internal/model"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return c, c.Finish()
}

func TestDefaults(t *testing.T) {
	t.Setenv("SNPVIEW_THEME", "")
	t.Setenv("SNPVIEW_LINE_COLOR", "")
	t.Setenv("SNPVIEW_LOG_LEVEL", "")
	c, err := parse(t)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if c.Theme != ThemeDark || c.DefaultColor() != model.DefaultLineColor || c.NoSession {
		t.Fatalf("defaults: %+v", c)
	}
}

func TestFlags(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	c, err := parse(t, "-f", "a.s2p", "--file", "~/b.s4p", "--theme", "light", "--line-color", "ff0000",
		"--export", "csv", "-o", "out.csv", "--where", "freq > 1")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if len(c.Files) != 2 || c.Files[1] != "/home/tester/b.s4p" {
		t.Fatalf("files: %q", c.Files)
	}
	if c.Theme != ThemeLight || c.DefaultColor() != (model.Color{R: 255}) || !c.Headless() || c.Where != "freq > 1" {
		t.Fatalf("config: %+v", c)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("SNPVIEW_THEME", "light")
	t.Setenv("SNPVIEW_LINE_COLOR", "#00ff00")
	c, err := parse(t)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if c.Theme != ThemeLight || c.DefaultColor() != (model.Color{G: 255}) {
		t.Fatalf("env: %+v", c)
	}
}

func TestValidation(t *testing.T) {
	cases := map[string][]string{
		"--out":     {"--export", "csv"},
		"theme":     {"--theme", "neon"},
		"color":     {"--line-color", "blue"},
		"format":    {"--export", "xml", "--out", "x"},
		"log level": {"--log-level", "loud"},
	}
	for want, args := range cases {
		_, err := parse(t, args...)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%v: got %v, want error mentioning %q", args, err, want)
		}
	}
}
