package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventListingLoaded   EventType = "ListingLoaded"
	EventSelectionChange EventType = "SelectionChanged"
	EventActionRequested EventType = "ActionRequested"
	EventActionCompleted EventType = "ActionCompleted"
	EventActionFailed    EventType = "ActionFailed"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ListingLoadedEvent is emitted when the event listing has been fetched
type ListingLoadedEvent struct {
	View  ViewMode
	Count int
}

func (e ListingLoadedEvent) Type() EventType { return EventListingLoaded }

// SelectionChangedEvent is emitted after the selection size changed
type SelectionChangedEvent struct {
	Before int
	After  int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChange }

// ActionRequestedEvent is emitted when a bulk action is sent to the service
type ActionRequestedEvent struct {
	Action   Action
	EventIDs []string
}

func (e ActionRequestedEvent) Type() EventType { return EventActionRequested }

// ActionCompletedEvent is emitted when the service accepted a bulk action
type ActionCompletedEvent struct {
	Action   Action
	EventIDs []string
	View     ViewMode
	Outcome  Outcome
}

func (e ActionCompletedEvent) Type() EventType { return EventActionCompleted }

// ActionFailedEvent is emitted when a bulk action could not be performed
type ActionFailedEvent struct {
	Action   Action
	EventIDs []string
	View     ViewMode
	Err      error
}

func (e ActionFailedEvent) Type() EventType { return EventActionFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
