// FILE: logpane/src/internal/tui/styles.go
package tui

import (
	"logpane/src/internal/core"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the model
type Styles struct {
	Levels   map[core.Level]lipgloss.Style
	Off      lipgloss.Style
	Target   lipgloss.Style
	Time     lipgloss.Style
	Switch   lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Levels: map[core.Level]lipgloss.Style{
			core.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			core.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			core.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			core.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			core.LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		},
		Off:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Target:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Time:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Switch:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected: lipgloss.NewStyle().Reverse(true),
	}
}

func (s Styles) level(l core.Level) lipgloss.Style {
	if st, ok := s.Levels[l]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
