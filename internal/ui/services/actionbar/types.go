package actionbar

import (
	"eventmod/internal/domain"
)

// State is the toolbar state
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// transitionKey is a row of the transition table
type transitionKey struct {
	from     State
	nonEmpty bool
}

// transitions maps (current state, selection non-empty) to the next state
var transitions = map[transitionKey]State{
	{Hidden, false}:  Hidden,
	{Hidden, true}:   Visible,
	{Visible, false}: Hidden,
	{Visible, true}:  Visible,
}

// Next returns the state the toolbar moves to for a selection of size n
func Next(from State, n int) State {
	return transitions[transitionKey{from: from, nonEmpty: n > 0}]
}

// MasterBox is the "select all" checkbox the controller clears when the
// toolbar hides
type MasterBox interface {
	UncheckMaster()
}

// ValidityQuery is a request for the actions allowed on a selection
type ValidityQuery struct {
	Seq uint64
	IDs []string
}

// Verdict is the validator's answer
type Verdict struct {
	Valid   []domain.Action
	Invalid []domain.Action
}

// Availability is the enabled flag of every action
type Availability map[domain.Action]bool

// Enabled lists the enabled actions in toolbar order
func (a Availability) Enabled() []domain.Action {
	var out []domain.Action
	for _, action := range domain.AllActions {
		if a[action] {
			out = append(out, action)
		}
	}
	return out
}

// Mutation is a bulk action the controller has cleared for execution
type Mutation struct {
	Action  domain.Action
	IDs     []string
	Outcome domain.Outcome
}

// Refusal explains why Invoke declined an action
type Refusal int

const (
	Accepted Refusal = iota
	RefusedHidden
	RefusedDisabled
	RefusedBusy
)

func (r Refusal) String() string {
	switch r {
	case RefusedHidden:
		return "nothing selected"
	case RefusedDisabled:
		return "action not available for this selection"
	case RefusedBusy:
		return "another action is still running"
	}
	return "accepted"
}
