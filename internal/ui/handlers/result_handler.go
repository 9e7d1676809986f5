package handlers

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/domain"
	"eventmod/internal/eventbus"
	"eventmod/internal/ui/commands"
	"eventmod/internal/ui/services/actionbar"
	"eventmod/internal/ui/services/selection"
	"eventmod/internal/ui/state"
)

// FadeDoneMsg is sent when removed rows have finished fading out.
// Gen is the listing generation the rows belonged to.
type FadeDoneMsg struct {
	IDs []string
	Gen uint64
}

// ClearBannerMsg is sent when a banner's display time is over
type ClearBannerMsg struct {
	ID int
}

// Timings controls the transient parts of the UI
type Timings struct {
	Fade   time.Duration
	Banner time.Duration
}

// ResultHandler connects the selection tracker, the toolbar controller and
// the listing, and applies service results to them
type ResultHandler struct {
	state     *state.AppState
	selection *selection.Service
	toolbar   *actionbar.Controller
	executor  *commands.Executor
	bus       eventbus.EventBus
	timings   Timings
}

// NewResultHandler creates a new result handler
func NewResultHandler(appState *state.AppState, sel *selection.Service, toolbar *actionbar.Controller,
	executor *commands.Executor, bus eventbus.EventBus, timings Timings) *ResultHandler {
	return &ResultHandler{
		state:     appState,
		selection: sel,
		toolbar:   toolbar,
		executor:  executor,
		bus:       bus,
		timings:   timings,
	}
}

// SelectionChanged hands the current selection to the toolbar and returns
// the validity query to run, if any
func (h *ResultHandler) SelectionChanged(change selection.Change) tea.Cmd {
	if !change.Changed() {
		return nil
	}
	query, ok := h.toolbar.SelectionChanged(h.selection.SelectedIDs())
	if !ok {
		return nil
	}
	return h.executor.ExecuteCheck(query)
}

// HandleVerdict applies a validity response
func (h *ResultHandler) HandleVerdict(msg commands.VerdictMsg) tea.Cmd {
	if msg.Err != nil {
		if !h.toolbar.VerdictFailed(msg.Seq) {
			return nil
		}
		h.publish(eventbus.ErrorEvent{Message: "validity check failed", Err: msg.Err})
		return h.showBanner(fmt.Sprintf("Could not check actions: %v", msg.Err), true)
	}
	h.toolbar.ApplyVerdict(msg.Seq, msg.Verdict)
	return nil
}

// Invoke runs a toolbar action on the current selection
func (h *ResultHandler) Invoke(action domain.Action) tea.Cmd {
	mutation, refusal := h.toolbar.Invoke(action, h.selection.SelectedIDs())
	if refusal != actionbar.Accepted {
		h.state.StatusMessage = fmt.Sprintf("%s: %s", action.Label(), refusal)
		return nil
	}
	h.state.StatusMessage = fmt.Sprintf("%s: sending %s", action.Label(), countEvents(len(mutation.IDs)))
	return h.executor.ExecuteAction(mutation)
}

// HandleActionResult applies the outcome of a bulk action. On failure
// nothing but the banner changes.
func (h *ResultHandler) HandleActionResult(msg commands.ActionResultMsg) tea.Cmd {
	h.toolbar.Finish()
	m := msg.Mutation
	view := h.toolbar.ViewMode()

	if msg.Err != nil {
		log.Printf("ResultHandler: %s on %v failed: %v", m.Action, m.IDs, msg.Err)
		h.publish(eventbus.ActionFailedEvent{Action: m.Action, EventIDs: m.IDs, View: view, Err: msg.Err})
		h.state.StatusMessage = ""
		return h.showBanner(fmt.Sprintf("%s failed: %v", m.Action.Label(), msg.Err), true)
	}

	h.publish(eventbus.ActionCompletedEvent{Action: m.Action, EventIDs: m.IDs, View: view, Outcome: m.Outcome})
	h.state.StatusMessage = ""
	cmds := []tea.Cmd{h.showBanner(fmt.Sprintf("%s %s", m.Action.Done(), countEvents(len(m.IDs))), false)}

	switch m.Outcome {
	case domain.OutcomeSoftUpdate:
		badge := domain.SoftBadge(m.Action)
		for _, id := range m.IDs {
			h.state.Listing.SetBadge(id, badge)
		}
		cmds = append(cmds, h.SelectionChanged(h.selection.SetAll(false)))

	default:
		// Rows on their way out can no longer be selected
		forgotten := h.selection.Forget(m.IDs)
		cleared := h.selection.SetAll(false)
		h.state.Listing.MarkFading(m.IDs)
		cmds = append(cmds,
			h.SelectionChanged(selection.Change{Before: forgotten.Before, After: cleared.After}),
			h.fadeOut(m.IDs),
		)
	}

	return tea.Batch(cmds...)
}

// HandleFadeDone removes faded rows and the dividers they leave empty
func (h *ResultHandler) HandleFadeDone(msg FadeDoneMsg) {
	if msg.Gen != h.state.ListingGen {
		log.Printf("ResultHandler: dropping fade of %v for a replaced listing", msg.IDs)
		return
	}
	removed := h.state.Listing.RemoveRows(msg.IDs)
	pruned := h.state.Listing.PruneEmptyDividers()
	log.Printf("ResultHandler: removed %d rows, %d dividers", removed, pruned)
	h.state.ClampCursor()
	h.state.EnsureCursorVisible()
}

// HandleClearBanner hides a banner whose time is over
func (h *ResultHandler) HandleClearBanner(msg ClearBannerMsg) {
	h.state.ClearBanner(msg.ID)
}

func (h *ResultHandler) fadeOut(ids []string) tea.Cmd {
	done := FadeDoneMsg{IDs: ids, Gen: h.state.ListingGen}
	if h.timings.Fade <= 0 {
		return func() tea.Msg { return done }
	}
	return tea.Tick(h.timings.Fade, func(time.Time) tea.Msg {
		return done
	})
}

func (h *ResultHandler) showBanner(text string, isError bool) tea.Cmd {
	id := h.state.ShowBanner(text, isError)
	if h.timings.Banner <= 0 {
		return nil
	}
	return tea.Tick(h.timings.Banner, func(time.Time) tea.Msg {
		return ClearBannerMsg{ID: id}
	})
}

func (h *ResultHandler) publish(event eventbus.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(event)
	}
}

func countEvents(n int) string {
	if n == 1 {
		return "1 event"
	}
	return fmt.Sprintf("%d events", n)
}
