package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"eventmod/internal/ui/input"
	"eventmod/internal/ui/input/types"
	"eventmod/internal/ui/services/actionbar"
	"eventmod/internal/ui/services/selection"
	"eventmod/internal/ui/state"
	"eventmod/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	selection *selection.Service
	toolbar   *actionbar.Controller
	input     *input.Handler
	keys      types.KeyMap
	width     int
	height    int
	help      help.Model
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, sel *selection.Service, toolbar *actionbar.Controller,
	inputHandler *input.Handler, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		state:     appState,
		selection: sel,
		toolbar:   toolbar,
		input:     inputHandler,
		keys:      keys,
		help:      help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	checked := make(map[string]bool, vm.selection.Count())
	for _, id := range vm.selection.SelectedIDs() {
		checked[id] = true
	}

	vs := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		View:           vm.toolbar.ViewMode(),
		Lines:          vm.state.Listing.Lines(),
		CursorID:       vm.state.CurrentRowID(),
		Checked:        checked,
		MasterChecked:  vm.selection.MasterChecked(),
		SelectedCount:  vm.selection.Count(),
		ToolbarVisible: vm.toolbar.Visible(),
		Availability:   vm.toolbar.Availability(),
		Checking:       vm.toolbar.Checking(),
		Busy:           vm.toolbar.Busy(),
		Banner:         vm.state.Banner,
		StatusMessage:  vm.state.StatusMessage,
		Prompt:         vm.input.Prompt(),
		Loading:        vm.state.Loading,
		LoadError:      vm.state.LoadError,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,
		ShowHelp:       vm.state.ShowHelp,
		HelpModel:      vm.help,
		Keys:           vm.keys,
	}
	if m, ok := vm.toolbar.InFlight(); ok {
		vs.BusyAction = m.Action
	}
	return vs
}
