package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Edit     tea.Key
	Add      tea.Key
	Remove   tea.Key
	Select   tea.Key
	NextFile tea.Key
	PrevFile tea.Key
	Save     tea.Key
	Load     tea.Key
	Export   tea.Key
	Clear    tea.Key
	Legend   tea.Key
	Info     tea.Key
	AppLogs  tea.Key
	Top      tea.Key
	Bottom   tea.Key
	Help     tea.Key
	Quit     tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit:     tea.Key{Type: tea.KeyEnter},
		Add:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'a'}},
		Remove:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
		Select:   tea.Key{Type: tea.KeyRunes, Runes: []rune{' '}},
		NextFile: tea.Key{Type: tea.KeyTab},
		PrevFile: tea.Key{Type: tea.KeyShiftTab},
		Save:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'s'}},
		Load:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'o'}},
		Export:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		Clear:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'C'}},
		Legend:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'l'}},
		Info:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'i'}},
		AppLogs:  tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Top:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		Bottom:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		Help:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
