package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"snpview/internal/app"
	"snpview/internal/config"
	"snpview/internal/tree"
	"snpview/internal/util/logx"
)

func initialModel(ctx context.Context, a *app.App) *Model {
	m := &Model{
		ctx:       ctx,
		app:       a,
		tr:        a.Tree,
		styles:    NewStyles(a.Cfg.Theme == config.ThemeDark),
		keymap:    DefaultKeyMap(),
		input:     textinput.New(),
		rowsDirty: true,
		lastPath:  a.Cfg.ConfigPath,
	}
	m.input.CharLimit = 1024
	m.modalVP = viewport.New(80, 20)
	m.cancelSub = m.tr.Subscribe(m.onTreeEvent)
	m.refreshRows()
	if sel := m.tr.Selected(); sel >= 0 {
		m.cursor = fileRow(m.rows, sel)
	}
	return m
}

// onTreeEvent runs synchronously inside tree mutations, so it only marks
// state; rendering happens on the next View.
func (m *Model) onTreeEvent(ev tree.Event) {
	switch ev.Kind {
	case tree.Inserted, tree.Removed, tree.Changed:
		m.rowsDirty = true
	case tree.SeriesChanged:
		logx.Debugf("ui: series recomputed for file %d", ev.Index)
	}
}

func Run(ctx context.Context, a *app.App) error {
	m := initialModel(ctx, a)
	defer m.cancelSub()
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if serr := a.SaveSession(); serr != nil {
		logx.Warnf("ui: saving session: %v", serr)
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}
