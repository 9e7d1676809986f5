package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidAction is returned when an action name cannot be parsed
var ErrInvalidAction = errors.New("invalid action")

// ErrUnknownViewMode is returned when a view mode name cannot be parsed
var ErrUnknownViewMode = errors.New("unknown view mode")

// Action is a bulk moderation action. The string value is the name the
// moderation service uses on the wire.
type Action string

// Bulk actions
const (
	ActionApprove Action = "approve"
	ActionReject  Action = "notapproved"
	ActionHold    Action = "onhold"
	ActionDelete  Action = "delete"
)

// AllActions lists the actions in toolbar order
var AllActions = []Action{ActionApprove, ActionReject, ActionHold, ActionDelete}

// ParseAction accepts wire names and the common aliases used by older
// validators ("reject", "hold", ...)
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "approve", "approved":
		return ActionApprove, nil
	case "notapproved", "not_approved", "reject", "rejected":
		return ActionReject, nil
	case "onhold", "on_hold", "hold":
		return ActionHold, nil
	case "delete", "deleted":
		return ActionDelete, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, name)
}

// Label returns the toolbar button label
func (a Action) Label() string {
	switch a {
	case ActionApprove:
		return "Approve"
	case ActionReject:
		return "Reject"
	case ActionHold:
		return "Hold"
	case ActionDelete:
		return "Delete"
	}
	return string(a)
}

// Done describes a finished action, for status messages
func (a Action) Done() string {
	switch a {
	case ActionApprove:
		return "Approved"
	case ActionReject:
		return "Rejected"
	case ActionHold:
		return "Put on hold"
	case ActionDelete:
		return "Deleted"
	}
	return string(a)
}

// ViewMode describes which listing the page is showing
type ViewMode string

// View modes
const (
	ViewPending   ViewMode = "pending"
	ViewAllFuture ViewMode = "all_future"
	ViewOther     ViewMode = "other"
)

// ParseViewMode parses a view mode name. An empty name means ViewOther.
func ParseViewMode(name string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pending":
		return ViewPending, nil
	case "all_future", "all-future", "allfuture":
		return ViewAllFuture, nil
	case "", "other", "default":
		return ViewOther, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, name)
}

// Shows reports whether events with the given status belong in this view
func (v ViewMode) Shows(status string) bool {
	switch v {
	case ViewPending:
		switch status {
		case StatusPending, StatusUnderstaffed, StatusOnHold, StatusExpired:
			return true
		}
		return false
	case ViewAllFuture:
		switch status {
		case StatusApproved, StatusNotApproved, StatusCanceled, StatusPending, StatusOnHold:
			return true
		}
		return false
	}
	return status != StatusDeleted
}

// Event statuses as reported by the moderation service
const (
	StatusPending      = "pending"
	StatusUnderstaffed = "understaffed"
	StatusApproved     = "approved"
	StatusNotApproved  = "not_approved"
	StatusOnHold       = "onhold"
	StatusCanceled     = "canceled"
	StatusDeleted      = "deleted"
	StatusExpired      = "expired"
)

// Event is a single event row on the moderation page
type Event struct {
	ID            string
	Name          string
	Status        string
	Member        string
	Type          string
	Rooms         []string
	EstimatedSize string
	Start         time.Time
	End           time.Time
}

// Outcome is what happens to the listing after a bulk action succeeds
type Outcome int

const (
	// OutcomeRemove fades out and removes the affected rows
	OutcomeRemove Outcome = iota
	// OutcomeSoftUpdate keeps rows visible and only changes their badges
	OutcomeSoftUpdate
)

func (o Outcome) String() string {
	if o == OutcomeSoftUpdate {
		return "soft-update"
	}
	return "remove"
}

// OutcomeFor decides how the listing reacts to a successful action
func OutcomeFor(mode ViewMode, action Action) Outcome {
	if action == ActionDelete {
		return OutcomeRemove
	}
	if mode == ViewAllFuture {
		return OutcomeSoftUpdate
	}
	if mode == ViewPending && action == ActionHold {
		return OutcomeSoftUpdate
	}
	return OutcomeRemove
}

// SoftBadge returns the badge label a soft update sets for an action.
// An empty label means the badge is hidden.
func SoftBadge(action Action) string {
	switch action {
	case ActionReject:
		return StatusNotApproved
	case ActionHold:
		return StatusOnHold
	}
	return ""
}
