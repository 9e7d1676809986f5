package input

import (
	"eventmod/internal/domain"
	"eventmod/internal/ui/services/actionbar"
	"eventmod/internal/ui/services/selection"
	"eventmod/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.AppState
	Selection *selection.Service
	Toolbar   *actionbar.Controller
}

// CurrentRowID returns the event id under the cursor
func (c *ModelContext) CurrentRowID() string {
	return c.State.CurrentRowID()
}

// HasSelection returns true if any items are selected
func (c *ModelContext) HasSelection() bool {
	return c.Selection.HasSelection()
}

// SelectedCount returns the number of selected items
func (c *ModelContext) SelectedCount() int {
	return c.Selection.Count()
}

// ToolbarVisible reports whether the bulk action toolbar is shown
func (c *ModelContext) ToolbarVisible() bool {
	return c.Toolbar.Visible()
}

// ActionEnabled reports whether a toolbar button is enabled
func (c *ModelContext) ActionEnabled(action domain.Action) bool {
	return c.Toolbar.Enabled(action)
}
