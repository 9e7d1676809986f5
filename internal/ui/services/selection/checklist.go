package selection

// Checklist is the collection of checkboxes on the page, in display order.
// It plays the role of the DOM: the tracker reads and writes box state
// through it but never creates boxes itself.
type Checklist struct {
	boxes  []*Checkbox
	byID   map[string]*Checkbox
	master *Checkbox
}

// NewChecklist creates a bulk-select box for each item id plus the master box
func NewChecklist(itemIDs []string) *Checklist {
	c := &Checklist{
		byID:   make(map[string]*Checkbox),
		master: &Checkbox{ID: MasterID},
	}
	for _, id := range itemIDs {
		c.Add(&Checkbox{ID: BoxID(id), Group: GroupMarker})
	}
	return c
}

// Add appends a checkbox. Boxes outside the bulk-select group are allowed;
// the tracker ignores them.
func (c *Checklist) Add(box *Checkbox) {
	if box == nil {
		return
	}
	if _, exists := c.byID[box.ID]; exists {
		return
	}
	c.boxes = append(c.boxes, box)
	c.byID[box.ID] = box
}

// Remove detaches the checkbox with the given box id
func (c *Checklist) Remove(boxID string) *Checkbox {
	box, ok := c.byID[boxID]
	if !ok {
		return nil
	}
	delete(c.byID, boxID)
	for i, b := range c.boxes {
		if b == box {
			c.boxes = append(c.boxes[:i], c.boxes[i+1:]...)
			break
		}
	}
	return box
}

// Box looks up a checkbox by its box id
func (c *Checklist) Box(boxID string) *Checkbox {
	return c.byID[boxID]
}

// ForItem looks up the bulk-select checkbox of an item
func (c *Checklist) ForItem(itemID string) *Checkbox {
	return c.byID[BoxID(itemID)]
}

// Boxes returns every checkbox in display order
func (c *Checklist) Boxes() []*Checkbox {
	out := make([]*Checkbox, len(c.boxes))
	copy(out, c.boxes)
	return out
}

// Master returns the "select all" checkbox
func (c *Checklist) Master() *Checkbox {
	return c.master
}

// Len returns the number of checkboxes, master excluded
func (c *Checklist) Len() int {
	return len(c.boxes)
}
