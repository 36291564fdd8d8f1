package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Scan        lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Location    lipgloss.Style
	LineNum     lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance. The highlight and selection
// colors come from the user's config; everything else is fixed.
func NewStyles(highlightColor, selectionColor string) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Scan:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Location:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		LineNum:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Highlight: lipgloss.NewStyle().
			Foreground(lipgloss.Color(highlightColor)).
			Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color(selectionColor)),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(0, 1),
	}
}
