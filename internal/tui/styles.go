package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("177"))

	SubtitleStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("183"))

	CountdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("219"))

	// Fan glyphs
	CardBackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("61"))
	CursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	TappedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	FlippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("141")).
			Padding(1, 2)

	QuoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252"))

	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("177")).
			Padding(1, 2)

	DateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("141")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)
