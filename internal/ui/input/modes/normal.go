package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/domain"
	"eventmod/internal/ui/input/types"
)

type NormalMode struct {
	keys          types.KeyMap
	confirmDelete bool
}

func NewNormalMode(keys types.KeyMap, confirmDelete bool) *NormalMode {
	return &NormalMode{keys: keys, confirmDelete: confirmDelete}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context, data interface{}) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Toggle):
		if ctx.CurrentRowID() == "" {
			return nil, false
		}
		return []types.Action{types.ToggleRowAction{}}, true
	case key.Matches(msg, m.keys.ToggleAll):
		return []types.Action{types.ToggleAllAction{}}, true
	case key.Matches(msg, m.keys.Clear):
		if !ctx.HasSelection() {
			return nil, false
		}
		return []types.Action{types.ClearSelectionAction{}}, true

	case key.Matches(msg, m.keys.Approve):
		return []types.Action{types.InvokeAction{Action: domain.ActionApprove}}, true
	case key.Matches(msg, m.keys.Reject):
		return []types.Action{types.InvokeAction{Action: domain.ActionReject}}, true
	case key.Matches(msg, m.keys.Hold):
		return []types.Action{types.InvokeAction{Action: domain.ActionHold}}, true
	case key.Matches(msg, m.keys.Delete):
		// Ask first, but only when the toolbar would accept the delete
		if m.confirmDelete && ctx.ToolbarVisible() && ctx.ActionEnabled(domain.ActionDelete) {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirm, Data: domain.ActionDelete}}, true
		}
		return []types.Action{types.InvokeAction{Action: domain.ActionDelete}}, true

	case key.Matches(msg, m.keys.Reload):
		return []types.Action{types.ReloadAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.ShowHelpPagerAction{}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
