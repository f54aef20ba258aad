package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	Directory    *lipgloss.Style
	File         *lipgloss.Style
	Selected     *lipgloss.Style
	Connector    *lipgloss.Style
	Marker       *lipgloss.Style
	Pruned       *lipgloss.Style
	Filler       *lipgloss.Style
	Status       *lipgloss.Style
	Pending      *lipgloss.Style
	Error        *lipgloss.Style
	Footer       *lipgloss.Style
	FooterKey    *lipgloss.Style
	FooterAction *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Directory: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	File: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Selected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Connector: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Marker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Pruned: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Filler: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Pending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FooterKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FooterAction: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
