package actionbar

import (
	"log"
	"slices"

	"eventmod/internal/domain"
)

// Controller drives the bulk action toolbar
type Controller struct {
	state    State
	mode     domain.ViewMode
	master   MasterBox
	enabled  Availability
	seq      uint64 // latest issued validity query
	checking bool   // a query for the current selection is outstanding
	inFlight *Mutation
}

// NewController creates a hidden toolbar for the given view
func NewController(mode domain.ViewMode, master MasterBox) *Controller {
	return &Controller{
		state:   Hidden,
		mode:    mode,
		master:  master,
		enabled: make(Availability),
	}
}

// SelectionChanged feeds the current selection into the state machine. It
// returns the validity query to issue, if any.
func (c *Controller) SelectionChanged(ids []string) (ValidityQuery, bool) {
	from := c.state
	c.state = Next(from, len(ids))

	if c.state == Hidden {
		if from == Visible {
			c.enterHidden()
		}
		return ValidityQuery{}, false
	}

	// Until the answer for this selection arrives nothing is enabled
	c.disableAll()
	c.seq++
	c.checking = true
	return ValidityQuery{Seq: c.seq, IDs: slices.Clone(ids)}, true
}

func (c *Controller) enterHidden() {
	c.disableAll()
	c.checking = false
	// Anything still in flight belongs to an older selection
	c.seq++
	if c.master != nil {
		c.master.UncheckMaster()
	}
}

func (c *Controller) disableAll() {
	c.enabled = make(Availability)
}

// ApplyVerdict applies a validity response. Responses for anything but the
// latest query, or arriving while hidden, are dropped and reported false.
// The applied availability is exactly the valid list.
func (c *Controller) ApplyVerdict(seq uint64, v Verdict) bool {
	if seq != c.seq {
		log.Printf("ActionBar: dropping stale validity response %d (latest %d)", seq, c.seq)
		return false
	}
	if c.state != Visible {
		return false
	}

	next := make(Availability)
	for _, a := range v.Valid {
		next[a] = true
	}
	for _, a := range v.Invalid {
		delete(next, a)
	}
	c.enabled = next
	c.checking = false
	return true
}

// VerdictFailed records a failed validity query. Actions stay disabled.
// It reports whether the failure concerns the current selection.
func (c *Controller) VerdictFailed(seq uint64) bool {
	if seq != c.seq || c.state != Visible {
		return false
	}
	c.checking = false
	c.disableAll()
	return true
}

// Invoke asks to run an action on the captured ids. It refuses when the
// toolbar is hidden, the action is disabled or a mutation is in flight.
func (c *Controller) Invoke(action domain.Action, ids []string) (Mutation, Refusal) {
	switch {
	case c.state != Visible:
		return Mutation{}, RefusedHidden
	case c.inFlight != nil:
		return Mutation{}, RefusedBusy
	case !c.enabled[action]:
		return Mutation{}, RefusedDisabled
	}

	m := Mutation{
		Action:  action,
		IDs:     slices.Clone(ids),
		Outcome: domain.OutcomeFor(c.mode, action),
	}
	c.inFlight = &m
	return m, Accepted
}

// Finish clears the in-flight mutation. The caller resets the selection on
// success; on failure nothing else changes so the action can be retried.
func (c *Controller) Finish() {
	c.inFlight = nil
}

// State returns the toolbar state
func (c *Controller) State() State {
	return c.state
}

// Visible reports whether the toolbar is shown
func (c *Controller) Visible() bool {
	return c.state == Visible
}

// Enabled reports whether an action button is enabled
func (c *Controller) Enabled(action domain.Action) bool {
	return c.state == Visible && c.enabled[action]
}

// Availability returns a copy of the current enablement
func (c *Controller) Availability() Availability {
	out := make(Availability, len(c.enabled))
	for k, v := range c.enabled {
		out[k] = v
	}
	return out
}

// Checking reports whether the current selection awaits a verdict
func (c *Controller) Checking() bool {
	return c.checking
}

// Busy reports whether a mutation is in flight
func (c *Controller) Busy() bool {
	return c.inFlight != nil
}

// InFlight returns the running mutation, if any
func (c *Controller) InFlight() (Mutation, bool) {
	if c.inFlight == nil {
		return Mutation{}, false
	}
	return *c.inFlight, true
}

// ViewMode returns the view the controller was created for
func (c *Controller) ViewMode() domain.ViewMode {
	return c.mode
}
