package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/domain"
	"eventmod/internal/ui/input/types"
)

type ConfirmMode struct {
	keys   types.KeyMap
	action domain.Action
	count  int
}

func NewConfirmMode(keys types.KeyMap) *ConfirmMode {
	return &ConfirmMode{keys: keys}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context, data interface{}) []types.Action {
	// Remember what is being confirmed and for how many events
	m.action = domain.ActionDelete
	if a, ok := data.(domain.Action); ok {
		m.action = a
	}
	m.count = ctx.SelectedCount()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// Prompt returns the question shown while confirming
func (m *ConfirmMode) Prompt() string {
	noun := "events"
	if m.count == 1 {
		noun = "event"
	}
	return fmt.Sprintf("%s %d %s? (y/n)", m.action.Label(), m.count, noun)
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Yes):
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.InvokeAction{Action: m.action},
		}, true
	case key.Matches(msg, m.keys.No):
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
			types.StatusAction{Message: "Cancelled"},
		}, true
	}

	// Swallow everything else while the question is open
	return nil, true
}
