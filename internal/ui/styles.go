package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"taskprog/internal/api"
	"taskprog/internal/notify"
	"taskprog/internal/progress"
)

// Palette, in 256-colour codes.
const (
	colorGreen  = "82"
	colorYellow = "226"
	colorRed    = "196"
	colorGray   = "240"
	colorCyan   = "86"
	colorBlue   = "39"
)

var (
	tabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color("236")).
			PaddingLeft(1).
			PaddingRight(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			PaddingLeft(1).
			PaddingRight(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorCyan))

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan))

	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorRed)).
			Padding(1, 2)
)

// tierColor maps a progress tier to its bar colour.
func tierColor(t progress.Tier) string {
	switch t {
	case progress.Danger:
		return colorRed
	case progress.Warning:
		return colorYellow
	case progress.Success:
		return colorGreen
	default:
		return colorGray
	}
}

func tierStyle(t progress.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tierColor(t))).Bold(true)
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case api.StatusCompleted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true)
	case api.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Bold(true)
	}
}

func noticeColor(l notify.Level) string {
	switch l {
	case notify.Success:
		return colorGreen
	case notify.Warning:
		return colorYellow
	case notify.Danger:
		return colorRed
	default:
		return colorCyan
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorGray)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(colorCyan))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
