package views

import (
	"fmt"
	"strings"

	"eventmod/internal/domain"
)

// ToolbarRenderer renders the bulk action bar
type ToolbarRenderer struct {
	styles *Styles
}

// NewToolbarRenderer creates a new toolbar renderer
func NewToolbarRenderer(styles *Styles) *ToolbarRenderer {
	return &ToolbarRenderer{styles: styles}
}

// RenderToolbar renders the buttons for the current availability
func (t *ToolbarRenderer) RenderToolbar(state ViewState) string {
	var b strings.Builder

	noun := "events"
	if state.SelectedCount == 1 {
		noun = "event"
	}
	b.WriteString(fmt.Sprintf("%d %s selected  ", state.SelectedCount, noun))

	for _, action := range domain.AllActions {
		b.WriteString(t.renderButton(action, state))
		b.WriteString(" ")
	}

	switch {
	case state.Busy:
		b.WriteString(t.styles.StatusWarning.Render(fmt.Sprintf(" %s…", state.BusyAction.Label())))
	case state.Checking:
		b.WriteString(t.styles.StatusLoading.Render(" checking…"))
	}

	return t.styles.Toolbar.Render(b.String())
}

func (t *ToolbarRenderer) renderButton(action domain.Action, state ViewState) string {
	label := action.Label()
	if k := state.Keys.ForAction(action).Help().Key; k != "" {
		label = fmt.Sprintf("%s (%s)", label, k)
	}
	if state.Availability[action] {
		return t.styles.ButtonEnabled.Render(label)
	}
	return t.styles.ButtonDisabled.Render(label)
}
