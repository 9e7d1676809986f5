package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/domain"
	"eventmod/internal/eventbus"
	"eventmod/internal/moderation"
	"eventmod/internal/ui/services/actionbar"
)

// Moderator is the service the commands talk to
type Moderator interface {
	CheckActions(ctx context.Context, eventIDs []string) (moderation.Verdict, error)
	Execute(ctx context.Context, action domain.Action, eventIDs []string) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Client  Moderator
	Bus     eventbus.EventBus
	Timeout time.Duration
}

func (c *CommandContext) withTimeout() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

// VerdictMsg carries the answer to a validity query
type VerdictMsg struct {
	Seq     uint64
	Verdict actionbar.Verdict
	Err     error
}

// ActionResultMsg carries the result of a bulk action
type ActionResultMsg struct {
	Mutation actionbar.Mutation
	Err      error
}

// ListingLoadedMsg carries the fetched events
type ListingLoadedMsg struct {
	Events []domain.Event
	Err    error
}

// CheckCommand asks which actions the selection allows
type CheckCommand struct {
	ctx   *CommandContext
	query actionbar.ValidityQuery
}

// NewCheckCommand creates a new validity check command
func NewCheckCommand(ctx *CommandContext, query actionbar.ValidityQuery) *CheckCommand {
	return &CheckCommand{ctx: ctx, query: query}
}

// Execute runs the query off the UI loop
func (c *CheckCommand) Execute() tea.Cmd {
	q := c.query
	return func() tea.Msg {
		ctx, cancel := c.ctx.withTimeout()
		defer cancel()

		v, err := c.ctx.Client.CheckActions(ctx, q.IDs)
		if err != nil {
			return VerdictMsg{Seq: q.Seq, Err: err}
		}
		return VerdictMsg{Seq: q.Seq, Verdict: actionbar.Verdict{Valid: v.Valid, Invalid: v.Invalid}}
	}
}

// ExecuteCommand performs a bulk action on the service
type ExecuteCommand struct {
	ctx      *CommandContext
	mutation actionbar.Mutation
}

// NewExecuteCommand creates a new bulk action command
func NewExecuteCommand(ctx *CommandContext, mutation actionbar.Mutation) *ExecuteCommand {
	return &ExecuteCommand{ctx: ctx, mutation: mutation}
}

// Execute announces the action and sends it
func (c *ExecuteCommand) Execute() tea.Cmd {
	m := c.mutation
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.ActionRequestedEvent{Action: m.Action, EventIDs: m.IDs})
	}
	return func() tea.Msg {
		ctx, cancel := c.ctx.withTimeout()
		defer cancel()

		err := c.ctx.Client.Execute(ctx, m.Action, m.IDs)
		return ActionResultMsg{Mutation: m, Err: err}
	}
}

// LoadCommand fetches the event listing
type LoadCommand struct {
	ctx *CommandContext
}

// NewLoadCommand creates a new listing load command
func NewLoadCommand(ctx *CommandContext) *LoadCommand {
	return &LoadCommand{ctx: ctx}
}

// Execute fetches the events off the UI loop
func (c *LoadCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := c.ctx.withTimeout()
		defer cancel()

		events, err := c.ctx.Client.ListEvents(ctx)
		return ListingLoadedMsg{Events: events, Err: err}
	}
}
