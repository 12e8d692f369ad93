package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"snpview/internal/app"
	"snpview/internal/tree"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalLogs
	modalInfo
)

// inlineMode is the prompt shown on the bottom line, if any.
type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineEdit
	inlineAdd
	inlineSave
	inlineLoad
	inlineExport
)

// row is one line of the tree pane.
type row struct {
	addr   tree.Address
	header bool // chart config or file node
	label  string
	value  string
}

type Model struct {
	ctx context.Context
	app *app.App
	tr  *tree.Tree

	// Tree pane
	rows      []row
	cursor    int
	offset    int
	rowsDirty bool
	cancelSub func()

	// UI
	styles     Styles
	keymap     KeyMap
	input      textinput.Model
	termWidth  int
	termHeight int

	// status
	lastMsg  string
	lastErr  bool
	lastPath string

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string
	helpItems   []helpItem
	helpSel     int

	inlineMode inlineMode
	editAddr   tree.Address
	recent     []string
	recentIdx  int
}

type helpItem struct {
	group string
	text  string
	key   tea.Key
}

func keyCmd(k tea.Key) tea.Cmd {
	return func() tea.Msg {
		if k.Type == tea.KeyRunes {
			return tea.KeyMsg{Type: k.Type, Runes: k.Runes}
		}
		return tea.KeyMsg{Type: k.Type}
	}
}

func keyLabel(k tea.Key) string {
	switch k.Type {
	case tea.KeyRunes:
		if len(k.Runes) == 1 {
			r := k.Runes[0]
			if r == ' ' {
				return "space"
			}
			return string(r)
		}
		return strings.ToLower(string(k.Runes))
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeyTab:
		return "tab"
	case tea.KeyShiftTab:
		return "shift-tab"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	case tea.KeyDelete:
		return "delete"
	default:
		return strings.ToLower(k.String())
	}
}
