package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/ui/input/modes"
	"eventmod/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	confirm     *modes.ConfirmMode
}

func New(keys types.KeyMap, confirmDelete bool) *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		confirm:     modes.NewConfirmMode(keys),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode(keys, confirmDelete)
	h.modes[types.ModeConfirm] = h.confirm

	return h
}

// HandleKey routes a key to the current mode and applies mode changes.
// Actions other than mode changes are returned for the model to process.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		// Exit current mode
		allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)

		h.currentMode = changeMode.Mode

		// Enter new mode
		if next := h.modes[h.currentMode]; next != nil {
			allActions = append(allActions, next.Enter(ctx, changeMode.Data)...)
		}
	}

	return allActions
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// Prompt returns the confirmation question while confirming
func (h *Handler) Prompt() string {
	if h.currentMode != types.ModeConfirm {
		return ""
	}
	return h.confirm.Prompt()
}
