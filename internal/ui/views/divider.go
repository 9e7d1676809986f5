package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DividerRenderer handles rendering of month and date dividers
type DividerRenderer struct {
	styles *Styles
}

// NewDividerRenderer creates a new divider renderer
func NewDividerRenderer(styles *Styles) *DividerRenderer {
	return &DividerRenderer{
		styles: styles,
	}
}

// RenderMonth renders a month divider as a rule across the width
func (d *DividerRenderer) RenderMonth(label string, width int) string {
	line := "── " + label + " "
	if width > 0 {
		if fill := width - lipgloss.Width(line); fill > 0 {
			line += strings.Repeat("─", fill)
		}
	}
	return d.styles.MonthDivider.Render(line)
}

// RenderDate renders a date divider
func (d *DividerRenderer) RenderDate(label string) string {
	return "  " + d.styles.DateDivider.Render(label)
}
