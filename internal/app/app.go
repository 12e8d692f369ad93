// Package app wires configuration, session state and the chart tree
// together for both the TUI and headless runs.
package app

import (
	"fmt"

	"snpview/internal/chartcfg"
	"snpview/internal/config"
	"snpview/internal/export"
	"snpview/internal/filter"
	"snpview/internal/session"
	"snpview/internal/tree"
	"snpview/internal/util/logx"
)

type App struct {
	Cfg     *config.Config
	Tree    *tree.Tree
	Session *session.Store // nil when sessions are disabled
}

// New builds the tree described by cfg. The last session is restored only
// when neither files nor a configuration were given.
func New(cfg *config.Config, opts ...tree.Option) (*App, error) {
	base := []tree.Option{
		tree.WithDefaultColor(cfg.DefaultColor()),
		tree.WithAutoRange(!cfg.NoAutoRange),
	}
	a := &App{Cfg: cfg, Tree: tree.New(append(base, opts...)...)}

	if !cfg.NoSession {
		s, err := session.Open(cfg.SessionDir)
		if err != nil {
			logx.Warnf("app: sessions disabled: %v", err)
		} else {
			a.Session = s
		}
	}

	switch {
	case cfg.ConfigPath != "":
		if err := a.LoadConfig(cfg.ConfigPath); err != nil {
			return nil, err
		}
	case len(cfg.Files) == 0 && a.Session != nil:
		a.restore()
	}
	for _, f := range cfg.Files {
		if err := a.AddFile(f); err != nil {
			return nil, err
		}
	}
	if cfg.Columns != "" {
		sel := a.Tree.Selected()
		if sel < 0 {
			return nil, fmt.Errorf("--columns given but no file is loaded")
		}
		if err := a.Tree.WriteField(tree.FileAddr(sel, tree.SlotColumns), cfg.Columns); err != nil {
			return nil, fmt.Errorf("--columns: %w", err)
		}
	}
	return a, nil
}

func (a *App) restore() {
	data, ok, err := a.Session.LoadLast()
	if err != nil {
		logx.Warnf("app: reading last session: %v", err)
		return
	}
	if !ok {
		return
	}
	cfg, err := chartcfg.Decode(data)
	if err != nil {
		logx.Warnf("app: discarding unreadable last session: %v", err)
		if err := a.Session.Forget(); err != nil {
			logx.Warnf("app: %v", err)
		}
		return
	}
	if err := a.Tree.Apply(cfg); err != nil {
		logx.Warnf("app: last session only partly restored: %v", err)
		return
	}
	logx.Infof("app: restored last session from %s", a.Session.Dir())
}

// AddFile loads path into the tree and records it as recent.
func (a *App) AddFile(path string) error {
	if err := a.Tree.AddFile(path); err != nil {
		return err
	}
	if a.Session != nil {
		if err := a.Session.Touch(path); err != nil {
			logx.Debugf("app: recent list: %v", err)
		}
	}
	return nil
}

func (a *App) LoadConfig(path string) error {
	cfg, err := chartcfg.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.Tree.Apply(cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logx.Infof("app: loaded chart configuration %s", path)
	return nil
}

func (a *App) SaveConfig(path string) error {
	if err := chartcfg.WriteFile(path, a.Tree.Config()); err != nil {
		return err
	}
	logx.Infof("app: saved chart configuration %s", path)
	return nil
}

// Recent lists recently opened files, newest first. Empty when sessions are
// disabled.
func (a *App) Recent() []string {
	if a.Session == nil {
		return nil
	}
	return a.Session.Recent()
}

// SaveSession stores the current tree for the next run.
func (a *App) SaveSession() error {
	if a.Session == nil {
		return nil
	}
	return a.Session.SaveLast(a.Tree.ExportConfig())
}

// Criteria builds the export filter from the --where and --series options.
func (a *App) Criteria() filter.Criteria {
	q, re := filter.ParseQuery(a.Cfg.Series)
	return filter.Criteria{Query: q, UseRegex: re, Expr: a.Cfg.Where}
}

// Export writes the selected file's plotted samples, filtered by c, and
// returns how many were written.
func (a *App) Export(path string, f export.Format, c filter.Criteria) (int, error) {
	res, ok := a.Tree.CurrentSeries()
	if !ok {
		return 0, fmt.Errorf("nothing to export: select a file and its columns first")
	}
	ev, err := filter.NewEvaluator(c)
	if err != nil {
		return 0, err
	}
	samples := ev.Apply(res.Samples())
	if err := export.ToFile(path, f, samples); err != nil {
		return 0, err
	}
	logx.Infof("app: exported %d samples to %s", len(samples), path)
	return len(samples), nil
}
