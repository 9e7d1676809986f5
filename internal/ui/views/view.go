package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"eventmod/internal/domain"
	"eventmod/internal/ui/input/types"
	"eventmod/internal/ui/services/actionbar"
	"eventmod/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	View           domain.ViewMode
	Lines          []state.Line
	CursorID       string
	Checked        map[string]bool
	MasterChecked  bool
	SelectedCount  int
	ToolbarVisible bool
	Availability   actionbar.Availability
	Checking       bool
	Busy           bool
	BusyAction     domain.Action
	Banner         state.Banner
	StatusMessage  string
	Prompt         string
	Loading        bool
	LoadError      string
	ViewportOffset int
	ViewportHeight int
	ShowHelp       bool
	HelpModel      help.Model
	Keys           types.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	rowRender     *RowRenderer
	dividerRender *DividerRenderer
	toolbarRender *ToolbarRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		rowRender:     NewRowRenderer(styles),
		dividerRender: NewDividerRenderer(styles),
		toolbarRender: NewToolbarRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title with view name and loading indicator
	title := r.styles.Title.Render("eventmod") + "  " + r.styles.Dim.Render(viewTitle(state.View))
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		title += "  " + r.styles.StatusLoading.Render(spinner[frame]+" Loading")
	}
	content.WriteString(title)
	content.WriteString("\n")

	// Master checkbox
	master := "[ ]"
	if state.MasterChecked {
		master = "[x]"
	}
	content.WriteString(r.styles.Dim.Render(master + " select all"))
	content.WriteString("\n")

	// Main content
	switch {
	case state.LoadError != "":
		content.WriteString(r.styles.StatusError.Render("Could not load events: " + state.LoadError))
	case state.Loading && len(state.Lines) == 0:
		content.WriteString(r.styles.Dim.Render("Fetching events..."))
	case len(state.Lines) == 0:
		content.WriteString(r.styles.Dim.Render("No events to moderate. Press R to reload."))
	default:
		content.WriteString(r.renderListing(state))
	}

	// Bottom section: toolbar, banner, prompt or status, help
	var bottom []string
	if state.ToolbarVisible {
		bottom = append(bottom, r.toolbarRender.RenderToolbar(state))
	}
	if state.Banner.Text != "" {
		style := r.styles.StatusSuccess
		if state.Banner.Error {
			style = r.styles.StatusError
		}
		bottom = append(bottom, style.Render(state.Banner.Text))
	}
	switch {
	case state.Prompt != "":
		bottom = append(bottom, r.styles.Confirm.Render(state.Prompt))
	case state.StatusMessage != "":
		bottom = append(bottom, r.styles.Status.Render(state.StatusMessage))
	}
	if state.ShowHelp {
		bottom = append(bottom, state.HelpModel.FullHelpView(state.Keys.FullHelp()))
	} else {
		bottom = append(bottom, state.HelpModel.ShortHelpView(state.Keys.ShortHelp()))
	}
	bottomText := strings.Join(bottom, "\n")

	// Push the bottom section down to the last lines
	currentLines := strings.Count(content.String(), "\n") + 1
	bottomLines := lipgloss.Height(bottomText)
	availableLines := state.Height - 2 // container padding
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - bottomLines; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(bottomText)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderListing renders the visible window of dividers and rows
func (r *Renderer) renderListing(vs ViewState) string {
	width := vs.Width - 4 // container padding
	start := vs.ViewportOffset
	if start < 0 || start >= len(vs.Lines) {
		start = 0
	}
	end := len(vs.Lines)
	if vs.ViewportHeight > 0 && start+vs.ViewportHeight < end {
		end = start + vs.ViewportHeight
	}

	var lines []string
	for _, line := range vs.Lines[start:end] {
		switch line.Kind {
		case state.MonthDivider:
			lines = append(lines, r.dividerRender.RenderMonth(line.Label, width))
		case state.DateDivider:
			lines = append(lines, r.dividerRender.RenderDate(line.Label))
		default:
			id := line.Row.ID()
			lines = append(lines, r.rowRender.RenderRow(line.Row, id == vs.CursorID, vs.Checked[id], width))
		}
	}

	if end < len(vs.Lines) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more lines", len(vs.Lines)-end)))
	}
	return strings.Join(lines, "\n")
}

func viewTitle(v domain.ViewMode) string {
	switch v {
	case domain.ViewPending:
		return "pending events"
	case domain.ViewAllFuture:
		return "all future events"
	default:
		return "events"
	}
}
