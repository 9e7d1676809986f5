package views

import (
	"github.com/charmbracelet/lipgloss"

	"eventmod/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Confirm        lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	MonthDivider   lipgloss.Style
	DateDivider    lipgloss.Style
	Fading         lipgloss.Style
	SelectionBg    lipgloss.Style
	ButtonEnabled  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Toolbar        lipgloss.Style
	StatusError    lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		MonthDivider: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		DateDivider: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Underline(true),
		Fading:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		ButtonEnabled: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		Toolbar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// GetStatusColor returns the badge color for an event status
func GetStatusColor(status string) string {
	switch status {
	case domain.StatusApproved:
		return "78" // green
	case domain.StatusPending, domain.StatusUnderstaffed:
		return "33" // blue
	case domain.StatusOnHold:
		return "214" // yellow
	case domain.StatusNotApproved, domain.StatusCanceled, domain.StatusDeleted:
		return "203" // red
	default:
		return "241" // gray
	}
}
