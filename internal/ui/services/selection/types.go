package selection

import "strings"

const (
	// GroupMarker tags the checkboxes that take part in bulk selection
	GroupMarker = "bulk-select"
	// BoxSuffix is appended to an item id to form its checkbox id
	BoxSuffix = "-box"
	// MasterID is the id of the "select all" checkbox
	MasterID = "toggle-all-box"
)

// Checkbox is a checkbox control on the page. The tracker mirrors it but
// does not own it.
type Checkbox struct {
	ID      string
	Group   string
	Checked bool
}

// BoxID returns the checkbox id for an item id
func BoxID(itemID string) string {
	return itemID + BoxSuffix
}

// ItemID strips the checkbox suffix
func (c *Checkbox) ItemID() string {
	return strings.TrimSuffix(c.ID, BoxSuffix)
}

// IsBulkSelect reports whether the box belongs to the bulk-select group
func (c *Checkbox) IsBulkSelect() bool {
	return c != nil && c.Group == GroupMarker
}

// Change describes how a mutation moved the selection size
type Change struct {
	Before int
	After  int
}

// Changed reports whether the number of selected items moved
func (c Change) Changed() bool {
	return c.Before != c.After
}

// Emptied reports a transition to an empty selection
func (c Change) Emptied() bool {
	return c.Before > 0 && c.After == 0
}

// Started reports a transition from an empty selection
func (c Change) Started() bool {
	return c.Before == 0 && c.After > 0
}
