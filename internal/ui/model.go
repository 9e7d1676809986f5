package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/config"
	"eventmod/internal/domain"
	"eventmod/internal/eventbus"
	"eventmod/internal/groups"
	"eventmod/internal/ui/commands"
	"eventmod/internal/ui/handlers"
	"eventmod/internal/ui/input"
	inputtypes "eventmod/internal/ui/input/types"
	"eventmod/internal/ui/services/actionbar"
	"eventmod/internal/ui/services/selection"
	"eventmod/internal/ui/state"
	"eventmod/internal/ui/viewmodels"
	"eventmod/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode
	location    *time.Location
	keys        inputtypes.KeyMap

	// Bulk moderation
	selection *selection.Service
	toolbar   *actionbar.Controller

	// Handlers
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	results      *handlers.ResultHandler
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, client commands.Moderator) *Model {
	appState := state.NewAppState()
	keys := inputtypes.DefaultKeyMap()

	view, err := cfg.ViewMode()
	if err != nil {
		log.Printf("Model: %v, using %s", err, domain.ViewOther)
		view = domain.ViewOther
	}

	sel := selection.NewService(selection.NewChecklist(nil), bus)
	toolbar := actionbar.NewController(view, sel)

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		location:     time.Local,
		keys:         keys,
		selection:    sel,
		toolbar:      toolbar,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(keys, cfg.UISettings.ConfirmDelete),
		helpRenderer: NewHelpRenderer(keys),
	}

	m.cmdExecutor = commands.NewExecutor(client, bus, cfg.Service.RequestTimeout.Duration)
	m.results = handlers.NewResultHandler(appState, sel, toolbar, m.cmdExecutor, bus, handlers.Timings{
		Fade:   cfg.UISettings.FadeDuration.Duration,
		Banner: cfg.UISettings.BannerDuration.Duration,
	})
	m.viewModel = viewmodels.NewViewModel(appState, sel, toolbar, m.inputHandler, keys)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetLocation sets the zone used to group events by date
func (m *Model) SetLocation(loc *time.Location) {
	if loc != nil {
		m.location = loc
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.cmdExecutor.ExecuteLoad(), tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}

		ctx := &input.ModelContext{
			State:     m.state,
			Selection: m.selection,
			Toolbar:   m.toolbar,
		}

		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleKey(msg, ctx) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleRowAction:
		change, ok := m.selection.Toggle(m.state.CurrentRowID())
		if !ok {
			m.state.StatusMessage = "This event can no longer be selected"
			return nil
		}
		return m.results.SelectionChanged(change)

	case inputtypes.ToggleAllAction:
		return m.results.SelectionChanged(m.selection.SetAll(!m.selection.MasterChecked()))

	case inputtypes.ClearSelectionAction:
		return m.results.SelectionChanged(m.selection.SetAll(false))

	case inputtypes.InvokeAction:
		return m.results.Invoke(a.Action)

	case inputtypes.ReloadAction:
		if m.toolbar.Busy() {
			m.state.StatusMessage = "Wait for the running action to finish"
			return nil
		}
		m.state.Loading = true
		m.state.LoadError = ""
		m.state.StatusMessage = ""
		return tea.Batch(m.cmdExecutor.ExecuteLoad(), tick())

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.updateViewportHeight()

	case inputtypes.ShowHelpPagerAction:
		if m.program == nil {
			m.state.ShowHelp = !m.state.ShowHelp
			m.updateViewportHeight()
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain(m.toolbar.ViewMode()))

	case inputtypes.StatusAction:
		m.state.StatusMessage = a.Message

	case inputtypes.QuitAction:
		return tea.Quit

	default:
		log.Printf("processAction: unhandled %T", action)
	}
	return nil
}

// handleNonKeyboardMsg handles service results, timers and pager messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.ListingLoadedMsg:
		return m, m.handleListingLoaded(msg)

	case commands.VerdictMsg:
		return m, m.results.HandleVerdict(msg)

	case commands.ActionResultMsg:
		return m, m.results.HandleActionResult(msg)

	case handlers.FadeDoneMsg:
		m.results.HandleFadeDone(msg)

	case handlers.ClearBannerMsg:
		m.results.HandleClearBanner(msg)

	case tickMsg:
		// Only the loading spinner animates
		if m.state.Loading {
			return m, tick()
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.state.StatusMessage = fmt.Sprintf("Help pager failed: %v", msg.err)
		}
	}
	return m, nil
}

// handleListingLoaded replaces the listing and its checkboxes
func (m *Model) handleListingLoaded(msg commands.ListingLoadedMsg) tea.Cmd {
	m.state.Loading = false
	if msg.Err != nil {
		m.state.LoadError = msg.Err.Error()
		if m.bus != nil {
			m.bus.Publish(eventbus.ErrorEvent{Message: "loading events failed", Err: msg.Err})
		}
		return nil
	}

	view := m.toolbar.ViewMode()
	events := groups.FilterForView(msg.Events, view)
	m.state.ReplaceListing(state.NewListing(events, m.location))
	m.state.LoadError = ""

	change := m.selection.Reset(selection.NewChecklist(m.state.Listing.RowIDs()))
	if m.bus != nil {
		m.bus.Publish(eventbus.ListingLoadedEvent{View: view, Count: len(events)})
	}
	log.Printf("Model: loaded %d of %d events for view %s", len(events), len(msg.Events), view)
	return m.results.SelectionChanged(change)
}

func (m *Model) navigate(direction string) {
	switch direction {
	case "up":
		m.state.MoveCursor(-1)
	case "down":
		m.state.MoveCursor(1)
	case "pageup":
		m.state.MoveCursor(-m.pageSize())
	case "pagedown":
		m.state.MoveCursor(m.pageSize())
	case "home":
		m.state.Cursor = 0
		m.state.ClampCursor()
	case "end":
		m.state.Cursor = m.state.Listing.Len() - 1
		m.state.ClampCursor()
	}
	m.state.EnsureCursorVisible()
}

func (m *Model) pageSize() int {
	if m.state.ViewportHeight > 1 {
		return m.state.ViewportHeight - 1
	}
	return 1
}

// updateViewportHeight recalculates how many listing lines fit on screen
func (m *Model) updateViewportHeight() {
	if m.height == 0 {
		return
	}
	// padding, title, master box, gap, toolbar with border, banner, status, help
	reserved := 2 + 1 + 1 + 1 + 2 + 1 + 1 + 1
	if m.state.ShowHelp {
		reserved += 6
	}
	m.state.ViewportHeight = m.height - reserved
	if m.state.ViewportHeight < 3 {
		m.state.ViewportHeight = 3
	}
	m.state.EnsureCursorVisible()
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
