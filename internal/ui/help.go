package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"eventmod/internal/domain"
	"eventmod/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain(view domain.ViewMode) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	writeKey := func(b key.Binding) {
		h := b.Help()
		help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc)))
	}

	help.WriteString(titleStyle.Render("eventmod Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	for _, b := range []key.Binding{r.keys.Up, r.keys.Down, r.keys.PageUp, r.keys.PageDown, r.keys.Home, r.keys.End} {
		writeKey(b)
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Selection"))
	help.WriteString("\n")
	for _, b := range []key.Binding{r.keys.Toggle, r.keys.ToggleAll, r.keys.Clear} {
		writeKey(b)
	}
	help.WriteString(noteStyle.Render("  The toolbar appears while at least one event is selected."))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("Bulk Actions"))
	help.WriteString("\n")
	for _, a := range domain.AllActions {
		writeKey(r.keys.ForAction(a))
	}
	help.WriteString(noteStyle.Render("  Buttons are enabled once the service has checked the selection."))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  " + outcomeNote(view)))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	for _, b := range []key.Binding{r.keys.Reload, r.keys.Help, r.keys.Pager, r.keys.Quit} {
		writeKey(b)
	}

	return help.String()
}

func outcomeNote(view domain.ViewMode) string {
	switch view {
	case domain.ViewAllFuture:
		return "In this view rows stay and their badge changes; deleted rows are removed."
	case domain.ViewPending:
		return "Held rows stay with an onhold badge; other actions remove the rows."
	default:
		return "Handled rows are removed from the list."
	}
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
