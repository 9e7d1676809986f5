package state

import (
	"time"

	"eventmod/internal/domain"
	"eventmod/internal/groups"
)

// NodeKind is the kind of a top-level listing element
type NodeKind int

const (
	MonthDivider NodeKind = iota
	DateDivider
	Table
)

// Node is a top-level listing element. Dividers are followed by what they
// group: a month divider by date dividers, a date divider by its table.
type Node struct {
	Kind  NodeKind
	Label string
	Rows  []*Row // only for Table
}

// Badge is the status label shown next to an event
type Badge struct {
	Text    string
	Visible bool
}

// Row is one event row
type Row struct {
	Event  domain.Event
	Badge  Badge
	Fading bool
}

// ID returns the row's item id
func (r *Row) ID() string {
	return r.Event.ID
}

// Listing is the grouped event list on screen
type Listing struct {
	nodes []*Node
	rows  map[string]*Row
}

// NewListing lays out events as month dividers, date dividers and tables
func NewListing(events []domain.Event, loc *time.Location) *Listing {
	l := &Listing{rows: make(map[string]*Row)}
	for _, month := range groups.ByDate(events, loc) {
		l.nodes = append(l.nodes, &Node{Kind: MonthDivider, Label: month.Label})
		for _, day := range month.Days {
			l.nodes = append(l.nodes, &Node{Kind: DateDivider, Label: day.Label})
			table := &Node{Kind: Table}
			for _, ev := range day.Events {
				row := &Row{Event: ev, Badge: initialBadge(ev.Status)}
				table.Rows = append(table.Rows, row)
				l.rows[ev.ID] = row
			}
			l.nodes = append(l.nodes, table)
		}
	}
	return l
}

func initialBadge(status string) Badge {
	if status == "" || status == domain.StatusApproved {
		return Badge{}
	}
	return Badge{Text: status, Visible: true}
}

// Nodes returns the top-level elements in order
func (l *Listing) Nodes() []*Node {
	return l.nodes
}

// Row looks up a row by item id
func (l *Listing) Row(id string) (*Row, bool) {
	r, ok := l.rows[id]
	return r, ok
}

// RowIDs returns item ids in display order
func (l *Listing) RowIDs() []string {
	var ids []string
	for _, n := range l.nodes {
		for _, r := range n.Rows {
			ids = append(ids, r.ID())
		}
	}
	return ids
}

// Len returns the number of rows
func (l *Listing) Len() int {
	return len(l.rows)
}

// SetBadge shows a badge with the given text. An empty text hides it.
func (l *Listing) SetBadge(id, text string) {
	r, ok := l.rows[id]
	if !ok {
		return
	}
	if text == "" {
		r.Badge = Badge{Text: r.Badge.Text}
		return
	}
	r.Badge = Badge{Text: text, Visible: true}
}

// HideBadge hides a row's badge
func (l *Listing) HideBadge(id string) {
	l.SetBadge(id, "")
}

// MarkFading starts the fade-out of rows about to be removed
func (l *Listing) MarkFading(ids []string) {
	for _, id := range ids {
		if r, ok := l.rows[id]; ok {
			r.Fading = true
		}
	}
}

// RemoveRows removes rows from their tables and returns how many were removed
func (l *Listing) RemoveRows(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := l.rows[id]; ok {
			drop[id] = true
			delete(l.rows, id)
		}
	}
	if len(drop) == 0 {
		return 0
	}

	for _, n := range l.nodes {
		if n.Kind != Table {
			continue
		}
		kept := n.Rows[:0]
		for _, r := range n.Rows {
			if !drop[r.ID()] {
				kept = append(kept, r)
			}
		}
		n.Rows = kept
	}
	return len(drop)
}

// PruneEmptyDividers removes date dividers whose table has no rows (with the
// table), then month dividers no longer followed by a date divider. It
// returns the number of dividers removed.
func (l *Listing) PruneEmptyDividers() int {
	removed := 0

	var pass []*Node
	for i := 0; i < len(l.nodes); i++ {
		n := l.nodes[i]
		if n.Kind == DateDivider {
			var table *Node
			if i+1 < len(l.nodes) && l.nodes[i+1].Kind == Table {
				table = l.nodes[i+1]
			}
			if table == nil || len(table.Rows) == 0 {
				removed++
				if table != nil {
					i++
				}
				continue
			}
		}
		pass = append(pass, n)
	}

	var out []*Node
	for i, n := range pass {
		if n.Kind == MonthDivider {
			if i+1 >= len(pass) || pass[i+1].Kind != DateDivider {
				removed++
				continue
			}
		}
		out = append(out, n)
	}

	l.nodes = out
	return removed
}

// Line is one screen line of the listing. Row is nil for dividers.
type Line struct {
	Kind  NodeKind
	Label string
	Row   *Row
}

// Lines flattens the listing into screen lines
func (l *Listing) Lines() []Line {
	var lines []Line
	for _, n := range l.nodes {
		if n.Kind != Table {
			lines = append(lines, Line{Kind: n.Kind, Label: n.Label})
			continue
		}
		for _, r := range n.Rows {
			lines = append(lines, Line{Kind: Table, Row: r})
		}
	}
	return lines
}

// LineOf returns the screen line of a row, or -1
func (l *Listing) LineOf(id string) int {
	for i, line := range l.Lines() {
		if line.Row != nil && line.Row.ID() == id {
			return i
		}
	}
	return -1
}
