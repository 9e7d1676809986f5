package selection

import (
	"maps"
	"slices"

	"eventmod/internal/eventbus"
)

// Service is the selection tracker. It keeps the selection set equal to the
// set of checked bulk-select boxes after every call returns.
type Service struct {
	boxes    *Checklist
	selected map[string]*Checkbox // item id -> box
	bus      eventbus.EventBus
}

// NewService creates a tracker over a checklist. bus may be nil.
func NewService(boxes *Checklist, bus eventbus.EventBus) *Service {
	s := &Service{
		boxes:    boxes,
		selected: make(map[string]*Checkbox),
		bus:      bus,
	}
	// Boxes may arrive pre-checked
	for _, box := range boxes.Boxes() {
		if box.IsBulkSelect() && box.Checked {
			s.selected[box.ItemID()] = box
		}
	}
	return s
}

// Checklist returns the tracked checkbox collection
func (s *Service) Checklist() *Checklist {
	return s.boxes
}

// OnCheckboxToggled reacts to a checkbox change. Boxes outside the
// bulk-select group are ignored and reported with ok=false.
func (s *Service) OnCheckboxToggled(box *Checkbox, checked bool) (change Change, ok bool) {
	if !box.IsBulkSelect() || s.boxes.Box(box.ID) != box {
		return Change{Before: len(s.selected), After: len(s.selected)}, false
	}

	before := len(s.selected)
	box.Checked = checked
	if checked {
		s.selected[box.ItemID()] = box
	} else {
		delete(s.selected, box.ItemID())
		// Selection is no longer complete
		s.boxes.Master().Checked = false
	}
	return s.changed(before), true
}

// Toggle flips the checkbox of an item, the way a click would
func (s *Service) Toggle(itemID string) (Change, bool) {
	box := s.boxes.ForItem(itemID)
	if box == nil {
		return Change{Before: len(s.selected), After: len(s.selected)}, false
	}
	return s.OnCheckboxToggled(box, !box.Checked)
}

// SetAll checks or unchecks every bulk-select box and makes the selection
// match exactly
func (s *Service) SetAll(checked bool) Change {
	before := len(s.selected)
	s.selected = make(map[string]*Checkbox)

	for _, box := range s.boxes.Boxes() {
		if !box.IsBulkSelect() {
			continue
		}
		box.Checked = checked
		if checked {
			s.selected[box.ItemID()] = box
		}
	}
	s.boxes.Master().Checked = checked
	return s.changed(before)
}

// Forget detaches the boxes of items leaving the page. They drop out of the
// selection and can no longer be toggled.
func (s *Service) Forget(itemIDs []string) Change {
	before := len(s.selected)
	for _, id := range itemIDs {
		if box := s.boxes.Remove(BoxID(id)); box != nil {
			box.Checked = false
		}
		delete(s.selected, id)
	}
	return s.changed(before)
}

// Reset replaces the tracked checkboxes, as when the page is reloaded.
// Boxes that arrive checked are selected.
func (s *Service) Reset(boxes *Checklist) Change {
	before := len(s.selected)
	s.boxes = boxes
	s.selected = make(map[string]*Checkbox)
	for _, box := range boxes.Boxes() {
		if box.IsBulkSelect() && box.Checked {
			s.selected[box.ItemID()] = box
		}
	}
	return s.changed(before)
}

// UncheckMaster clears the "select all" box
func (s *Service) UncheckMaster() {
	s.boxes.Master().Checked = false
}

// MasterChecked reports the state of the "select all" box
func (s *Service) MasterChecked() bool {
	return s.boxes.Master().Checked
}

// IsSelected checks if an item is selected
func (s *Service) IsSelected(itemID string) bool {
	_, ok := s.selected[itemID]
	return ok
}

// SelectedIDs returns the ids of the selected items in sorted order
func (s *Service) SelectedIDs() []string {
	return slices.Sorted(maps.Keys(s.selected))
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.selected)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.selected) > 0
}

func (s *Service) changed(before int) Change {
	c := Change{Before: before, After: len(s.selected)}
	if s.bus != nil && c.Changed() {
		s.bus.Publish(eventbus.SelectionChangedEvent{Before: c.Before, After: c.After})
	}
	return c
}
