package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"snpview/internal/export"
	"snpview/internal/model"
	"snpview/internal/tree"
	"snpview/internal/util/logx"
)

func (m *Model) buildHelpItems() []helpItem {
	km := m.keymap
	return []helpItem{
		{group: "Navigation", text: "Previous row", key: tea.Key{Type: tea.KeyUp}},
		{group: "Navigation", text: "Next row", key: tea.Key{Type: tea.KeyDown}},
		{group: "Navigation", text: "Page up", key: tea.Key{Type: tea.KeyPgUp}},
		{group: "Navigation", text: "Page down", key: tea.Key{Type: tea.KeyPgDown}},
		{group: "Navigation", text: "Go to top", key: km.Top},
		{group: "Navigation", text: "Go to bottom", key: km.Bottom},
		{group: "Navigation", text: "Next file", key: km.NextFile},
		{group: "Navigation", text: "Previous file", key: km.PrevFile},

		{group: "Edit", text: "Edit field / select file", key: km.Edit},
		{group: "Edit", text: "Select file under cursor", key: km.Select},
		{group: "Edit", text: "Toggle legend", key: km.Legend},

		{group: "Files", text: "Add file", key: km.Add},
		{group: "Files", text: "Remove file", key: km.Remove},
		{group: "Files", text: "Clear all", key: km.Clear},
		{group: "Files", text: "File info", key: km.Info},

		{group: "Config", text: "Save configuration", key: km.Save},
		{group: "Config", text: "Load configuration", key: km.Load},
		{group: "Config", text: "Export samples", key: km.Export},

		{group: "Control", text: "Application logs", key: km.AppLogs},
		{group: "Control", text: "Help", key: km.Help},
		{group: "Control", text: "Quit", key: km.Quit},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-20)
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modalActive {
			return m.updateModal(msg)
		}
		if m.inlineMode != inlineNone {
			return m.updateInline(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalKind == modalHelp {
		switch {
		case msg.Type == tea.KeyUp:
			if m.helpSel > 0 {
				m.helpSel--
			}
			return m, nil
		case msg.Type == tea.KeyDown:
			if m.helpSel+1 < len(m.helpItems) {
				m.helpSel++
			}
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.modalActive = false
			if len(m.helpItems) > 0 {
				return m, keyCmd(m.helpItems[m.helpSel].key)
			}
			return m, nil
		case msg.Type == tea.KeyEsc || keyMatches(msg, m.keymap.Quit) || keyMatches(msg, m.keymap.Help):
			m.modalActive = false
			return m, nil
		}
		return m, nil
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit) {
		m.modalActive = false
		return m, nil
	}
	var cmd tea.Cmd
	m.modalVP, cmd = m.modalVP.Update(msg)
	return m, cmd
}

func (m *Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	m.refreshRows()
	page := max(1, m.treeHeight()-1)
	switch {
	case keyMatches(msg, km.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyUp || msg.String() == "k":
		m.moveCursor(-1)
	case msg.Type == tea.KeyDown || msg.String() == "j":
		m.moveCursor(1)
	case msg.Type == tea.KeyPgUp:
		m.moveCursor(-page)
	case msg.Type == tea.KeyPgDown:
		m.moveCursor(page)
	case keyMatches(msg, km.Top):
		m.cursor = 0
	case keyMatches(msg, km.Bottom):
		m.cursor = len(m.rows) - 1
	case keyMatches(msg, km.NextFile), keyMatches(msg, km.PrevFile):
		m.cycleFile(keyMatches(msg, km.NextFile))
	case keyMatches(msg, km.Edit):
		return m, m.startEdit()
	case keyMatches(msg, km.Select):
		m.selectUnderCursor()
	case keyMatches(msg, km.Legend):
		g := m.tr.Globals()
		m.report(m.tr.WriteField(tree.GlobalAddr(tree.SlotLegend), !g.Legend), "legend toggled")
	case keyMatches(msg, km.Add):
		return m, m.promptAdd()
	case keyMatches(msg, km.Remove):
		m.removeUnderCursor()
	case keyMatches(msg, km.Clear):
		m.tr.Clear()
		m.cursor = 0
		m.status("cleared all files")
	case keyMatches(msg, km.Save):
		return m, m.prompt(inlineSave, "save config: ", "path", m.lastPath)
	case keyMatches(msg, km.Load):
		return m, m.prompt(inlineLoad, "load config: ", "path", m.lastPath)
	case keyMatches(msg, km.Export):
		return m, m.prompt(inlineExport, "export to: ", "out.csv or out.json", "")
	case keyMatches(msg, km.Info):
		m.openInfoModal()
	case keyMatches(msg, km.AppLogs):
		m.openAppLogsModal()
	case keyMatches(msg, km.Help):
		m.openHelpModal()
	}
	return m, nil
}

func (m *Model) updateInline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endPrompt()
		return m, nil
	case tea.KeyEnter:
		mode, text := m.inlineMode, m.input.Value()
		m.endPrompt()
		m.applyInline(mode, text)
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if m.inlineMode == inlineAdd && len(m.recent) > 0 {
			m.stepRecent(msg.Type == tea.KeyUp)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) prompt(mode inlineMode, promptText, placeholder, value string) tea.Cmd {
	m.inlineMode = mode
	m.input.Prompt = promptText
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// promptAdd opens the add-file prompt with the recent files: up/down walk
// the list, tab completes a typed prefix.
func (m *Model) promptAdd() tea.Cmd {
	m.recent = m.app.Recent()
	m.recentIdx = -1
	placeholder := "path to .sNp file"
	if len(m.recent) > 0 {
		placeholder += " (up: recent)"
	}
	cmd := m.prompt(inlineAdd, "add file: ", placeholder, "")
	m.input.SetSuggestions(m.recent)
	m.input.ShowSuggestions = len(m.recent) > 0
	return cmd
}

func (m *Model) stepRecent(older bool) {
	i := m.recentIdx + 1
	if !older {
		i = m.recentIdx - 1
	}
	switch {
	case i < 0:
		m.recentIdx = -1
		m.input.SetValue("")
		return
	case i >= len(m.recent):
		i = len(m.recent) - 1
	}
	m.recentIdx = i
	m.input.SetValue(m.recent[i])
	m.input.CursorEnd()
}

func (m *Model) endPrompt() {
	m.inlineMode = inlineNone
	m.input.Blur()
	m.input.SetValue("")
	m.input.ShowSuggestions = false
	m.input.SetSuggestions(nil)
	m.recent = nil
}

func (m *Model) applyInline(mode inlineMode, text string) {
	path := strings.TrimSpace(text)
	switch mode {
	case inlineEdit:
		if err := m.tr.WriteFieldText(m.editAddr, text); err != nil {
			m.report(err, "")
			return
		}
		m.status(fmt.Sprintf("%s updated", m.editAddr.Slot))
	case inlineAdd:
		if path == "" {
			return
		}
		if err := m.app.AddFile(path); err != nil {
			m.report(err, "")
			return
		}
		m.refreshRows()
		m.cursor = fileRow(m.rows, m.tr.Selected())
		m.status("loaded " + filepath.Base(path))
	case inlineSave:
		if path == "" {
			return
		}
		m.lastPath = path
		m.report(m.app.SaveConfig(path), "saved "+path)
	case inlineLoad:
		if path == "" {
			return
		}
		m.lastPath = path
		m.report(m.app.LoadConfig(path), "loaded "+path)
	case inlineExport:
		if path == "" {
			return
		}
		f := export.CSV
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".json" || ext == ".ndjson" {
			f = export.NDJSON
		}
		n, err := m.app.Export(path, f, m.app.Criteria())
		m.report(err, fmt.Sprintf("exported %d samples to %s", n, path))
	}
}

func (m *Model) startEdit() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if r.header {
		m.selectUnderCursor()
		return nil
	}
	sp, _ := tree.Spec(r.addr.Slot)
	if !sp.Editable {
		m.status(sp.Label + " is read-only")
		return nil
	}
	m.editAddr = r.addr
	placeholder := sp.Kind.String()
	if sp.Kind == tree.KindColumns {
		placeholder = "[1,1],[2,1]"
	}
	return m.prompt(inlineEdit, sp.Label+": ", placeholder, r.value)
}

func (m *Model) selectUnderCursor() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	if i := m.rows[m.cursor].addr.Entry; i != tree.Global {
		m.report(m.tr.Select(i), "")
	}
}

func (m *Model) removeUnderCursor() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	i := m.rows[m.cursor].addr.Entry
	if i == tree.Global {
		m.status("move to a file to remove it")
		return
	}
	e, err := m.tr.Entry(i)
	if err != nil {
		m.report(err, "")
		return
	}
	m.report(m.tr.RemoveFile(i), "removed "+e.Dataset.Name())
	m.refreshRows()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *Model) cycleFile(forward bool) {
	n := m.tr.Len()
	if n == 0 {
		return
	}
	next := m.tr.Selected()
	if forward {
		next = (next + 1) % n
	} else {
		next = (next - 1 + n) % n
	}
	if err := m.tr.Select(next); err != nil {
		m.report(err, "")
		return
	}
	m.refreshRows()
	m.cursor = fileRow(m.rows, next)
}

func (m *Model) moveCursor(d int) {
	m.cursor += d
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *Model) refreshRows() {
	if !m.rowsDirty {
		return
	}
	m.rows = buildRows(m.tr)
	m.rowsDirty = false
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *Model) status(s string) {
	m.lastMsg, m.lastErr = s, false
}

// report shows err, or ok when err is nil and ok is not empty.
func (m *Model) report(err error, ok string) {
	if err != nil {
		m.lastMsg, m.lastErr = describe(err), true
		logx.Warnf("ui: %v", err)
		return
	}
	if ok != "" {
		m.status(ok)
	}
}

func describe(err error) string {
	if model.IsRejected(err) {
		return "rejected: " + err.Error()
	}
	return err.Error()
}
