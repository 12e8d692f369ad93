package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"snpview/internal/tree"
	"snpview/internal/util/logx"
)

const treeWidth = 38

func (m *Model) View() string {
	if m.termWidth == 0 {
		return "loading..."
	}
	m.refreshRows()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Pane.Render(m.renderTree()),
		" ",
		m.renderChartPane(),
	)
	v := body + "\n" + m.renderBottom()
	if m.modalActive {
		// Dim the background content while keeping it visible
		dimmed := lipgloss.NewStyle().Faint(true).Render(v)
		v = overlay(dimmed, m.renderModal())
	}
	return v
}

// treeHeight is the number of rows the tree pane shows.
func (m *Model) treeHeight() int {
	return max(1, m.termHeight-2)
}

func (m *Model) renderTree() string {
	h := m.treeHeight()
	m.offset = clampScroll(m.cursor, m.offset, h, len(m.rows))
	sel := m.tr.Selected()
	lines := make([]string, 0, h)
	for i := m.offset; i < len(m.rows) && len(lines) < h; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor, sel))
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(treeWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(r row, atCursor bool, selected int) string {
	st := m.styles
	var text string
	if r.header {
		mark := "  "
		if r.addr.Entry != tree.Global && r.addr.Entry == selected {
			mark = "▸ "
		}
		text = mark + r.label
		text = truncate(text, treeWidth)
		if atCursor {
			return st.Cursor.Render(text)
		}
		return st.Header.Render(text)
	}
	sp, _ := tree.Spec(r.addr.Slot)
	label := fmt.Sprintf("    %-14s ", r.label)
	value := truncate(r.value, treeWidth-len(label))
	if atCursor {
		return st.Cursor.Render(label + value)
	}
	if !sp.Editable {
		return st.ReadOnly.Render(label + value)
	}
	return st.Label.Render(label) + st.Value.Render(value)
}

func (m *Model) renderChartPane() string {
	w := max(10, m.termWidth-treeWidth-2)
	h := m.treeHeight()
	res, ok := m.tr.CurrentSeries()
	rc, _ := m.tr.SelectedRender()
	return lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(
		renderChart(m.styles, res, ok, rc, m.tr.Globals(), w, h))
}

func (m *Model) renderBottom() string {
	if m.inlineMode != inlineNone {
		return m.input.View() + m.styles.Help.Render("  [enter]=apply [esc]=cancel")
	}
	sel := "none"
	if i := m.tr.Selected(); i >= 0 {
		if e, err := m.tr.Entry(i); err == nil {
			sel = e.Dataset.Name()
		}
	}
	status := fmt.Sprintf("files:%d selected:%s | [?]=help", m.tr.Len(), sel)
	if m.lastMsg == "" {
		return m.styles.Status.Render(status)
	}
	msg := m.styles.Status.Render(m.lastMsg)
	if m.lastErr {
		msg = m.styles.Error.Render(m.lastMsg)
	}
	return m.styles.Status.Render(status+" | ") + msg
}

func (m *Model) renderHelp() string {
	if len(m.helpItems) == 0 {
		m.helpItems = m.buildHelpItems()
	}
	if m.helpSel < 0 {
		m.helpSel = 0
	}
	if m.helpSel >= len(m.helpItems) {
		m.helpSel = len(m.helpItems) - 1
	}
	lines := []string{"Shortcuts:"}
	currentGroup := ""
	lineIndexOfSel := 0
	for i, it := range m.helpItems {
		if it.group != currentGroup {
			currentGroup = it.group
			lines = append(lines, "", currentGroup+":")
		}
		prefix := "  "
		if i == m.helpSel {
			prefix = "> "
			lineIndexOfSel = len(lines)
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, keyLabel(it.key), it.text))
	}
	if m.modalVP.Height > 0 {
		top := m.modalVP.YOffset
		bottom := top + m.modalVP.Height - 1
		if lineIndexOfSel <= top {
			m.modalVP.YOffset = max(0, lineIndexOfSel-1)
		} else if lineIndexOfSel >= bottom {
			m.modalVP.YOffset = max(0, lineIndexOfSel-m.modalVP.Height+2)
		}
	}
	return m.styles.Help.Render(strings.Join(lines, "\n"))
}

func (m *Model) openHelpModal() {
	m.modalActive = true
	m.modalKind = modalHelp
	m.modalTitle = "Help"
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.resizeModal()
	m.modalBody = m.renderHelp()
}

func (m *Model) openAppLogsModal() {
	m.modalActive = true
	m.modalKind = modalLogs
	m.modalTitle = "Application Logs"
	m.modalBody = logx.Dump()
	m.resizeModal()
	m.modalVP.GotoBottom()
}

func (m *Model) openInfoModal() {
	i := m.tr.Selected()
	if m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].addr.Entry != tree.Global {
		i = m.rows[m.cursor].addr.Entry
	}
	e, err := m.tr.Entry(i)
	if err != nil {
		m.status("no file to describe")
		return
	}
	m.modalActive = true
	m.modalKind = modalInfo
	m.modalTitle = e.Dataset.Name()
	m.modalBody = describeDataset(e.Dataset)
	m.resizeModal()
}

func (m *Model) resizeModal() {
	w := max(20, m.termWidth-6)
	h := max(5, m.termHeight-6)
	m.modalVP = viewport.New(w-4, h-4)
	m.modalVP.SetContent(m.modalBody)
}

func (m *Model) renderModal() string {
	var content string
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelp())
		content = m.modalVP.View() + "\n[esc]=close  [enter]=run"
	default:
		content = m.modalVP.View() + "\n[esc/enter]=close  [↑/↓]=scroll"
	}
	boxW := max(20, m.termWidth-6)
	title := m.styles.PopupTitle.Render(m.modalTitle)
	body := m.styles.PopupBox.Width(boxW).Render(title + "\n" + content)
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}
