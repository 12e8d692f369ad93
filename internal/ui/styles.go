package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Base       lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Header     lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	ReadOnly   lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Help       lipgloss.Style
	Pane       lipgloss.Style
	ChartTitle lipgloss.Style
	Axis       lipgloss.Style
	Grid       lipgloss.Style
	PopupBox   lipgloss.Style
	PopupTitle lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Base = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
		s.ReadOnly = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Axis = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		s.Grid = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
		s.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("238"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	} else {
		s.Base = lipgloss.NewStyle()
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.ReadOnly = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Axis = lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
		s.Grid = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("250"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
	}
	s.Value = lipgloss.NewStyle()
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Cursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	s.Selected = lipgloss.NewStyle().Underline(true)
	s.ChartTitle = lipgloss.NewStyle().Bold(true)
	return s
}
