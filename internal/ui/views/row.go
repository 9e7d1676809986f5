package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eventmod/internal/ui/state"
)

// RowRenderer handles rendering of event rows
type RowRenderer struct {
	styles *Styles
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles) *RowRenderer {
	return &RowRenderer{
		styles: styles,
	}
}

// RenderRow renders an event row with its checkbox and badge
func (r *RowRenderer) RenderRow(row *state.Row, isCursor bool, isChecked bool, width int) string {
	if row == nil {
		return ""
	}
	ev := row.Event

	checkbox := "[ ]"
	if isChecked {
		checkbox = "[x]"
	}

	var parts []string
	parts = append(parts, "    "+checkbox)
	parts = append(parts, r.formatTime(row))
	parts = append(parts, ev.Name)

	var details []string
	if ev.Type != "" {
		details = append(details, ev.Type)
	}
	if ev.Member != "" {
		details = append(details, ev.Member)
	}
	if len(ev.Rooms) > 0 {
		details = append(details, strings.Join(ev.Rooms, ", "))
	}
	if ev.EstimatedSize != "" {
		details = append(details, ev.EstimatedSize+" ppl")
	}

	line := strings.Join(parts, "  ")
	if len(details) > 0 {
		line += "  " + r.styles.Dim.Render(strings.Join(details, " · "))
	}

	if row.Badge.Visible && row.Badge.Text != "" {
		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color(GetStatusColor(row.Badge.Text))).
			Render("[" + row.Badge.Text + "]")
		line += "  " + badge
	}

	if row.Fading {
		return r.styles.Fading.Render(line)
	}

	if isCursor {
		// Pad the line to full width
		if width > 0 {
			if lineLen := lipgloss.Width(line); lineLen < width {
				line += strings.Repeat(" ", width-lineLen)
			}
		}
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

func (r *RowRenderer) formatTime(row *state.Row) string {
	start := row.Event.Start
	if start.IsZero() {
		return "     "
	}
	if end := row.Event.End; !end.IsZero() {
		return fmt.Sprintf("%s–%s", start.Format("15:04"), end.Format("15:04"))
	}
	return start.Format("15:04")
}
