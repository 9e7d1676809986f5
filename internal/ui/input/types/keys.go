package types

import (
	"github.com/charmbracelet/bubbles/key"

	"eventmod/internal/domain"
)

// KeyMap holds the key bindings of the moderation screen
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Clear     key.Binding
	Approve   key.Binding
	Reject    key.Binding
	Hold      key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Help      key.Binding
	Pager     key.Binding
	Quit      key.Binding
	Yes       key.Binding
	No        key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		ToggleAll: key.NewBinding(key.WithKeys("*", "ctrl+a"), key.WithHelp("*", "select all")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Approve:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		Reject:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		Hold:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hold")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Pager:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help pager")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// ForAction returns the binding that invokes a bulk action
func (k KeyMap) ForAction(a domain.Action) key.Binding {
	switch a {
	case domain.ActionApprove:
		return k.Approve
	case domain.ActionReject:
		return k.Reject
	case domain.ActionHold:
		return k.Hold
	case domain.ActionDelete:
		return k.Delete
	}
	return key.Binding{}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Approve, k.Reject, k.Hold, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.ToggleAll, k.Clear},
		{k.Approve, k.Reject, k.Hold, k.Delete},
		{k.Reload, k.Pager, k.Help, k.Quit},
	}
}
