package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eventmod/internal/eventbus"
	"eventmod/internal/ui/services/actionbar"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(client Moderator, bus eventbus.EventBus, timeout time.Duration) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Client:  client,
			Bus:     bus,
			Timeout: timeout,
		},
	}
}

// ExecuteCheck creates and executes a validity check command
func (e *Executor) ExecuteCheck(query actionbar.ValidityQuery) tea.Cmd {
	cmd := NewCheckCommand(e.ctx, query)
	return cmd.Execute()
}

// ExecuteAction creates and executes a bulk action command
func (e *Executor) ExecuteAction(mutation actionbar.Mutation) tea.Cmd {
	cmd := NewExecuteCommand(e.ctx, mutation)
	return cmd.Execute()
}

// ExecuteLoad creates and executes a listing load command
func (e *Executor) ExecuteLoad() tea.Cmd {
	cmd := NewLoadCommand(e.ctx)
	return cmd.Execute()
}
