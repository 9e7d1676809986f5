package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmod/internal/domain"
)

func ev(id, day, status string) domain.Event {
	start, err := time.ParseInLocation("2006-01-02 15:04", day+" 19:00", time.UTC)
	if err != nil {
		panic(err)
	}
	return domain.Event{ID: id, Name: "event " + id, Status: status, Start: start}
}

func kinds(l *Listing) []NodeKind {
	var out []NodeKind
	for _, n := range l.Nodes() {
		out = append(out, n.Kind)
	}
	return out
}

func sampleListing() *Listing {
	return NewListing([]domain.Event{
		ev("1", "2026-10-20", domain.StatusPending),
		ev("2", "2026-10-20", domain.StatusOnHold),
		ev("3", "2026-10-21", domain.StatusPending),
		ev("4", "2026-11-05", domain.StatusApproved),
	}, time.UTC)
}

func TestNewListingLayout(t *testing.T) {
	l := sampleListing()

	assert.Equal(t, []NodeKind{
		MonthDivider, DateDivider, Table, DateDivider, Table,
		MonthDivider, DateDivider, Table,
	}, kinds(l))
	assert.Equal(t, []string{"1", "2", "3", "4"}, l.RowIDs())
	assert.Equal(t, 4, l.Len())

	r, ok := l.Row("2")
	require.True(t, ok)
	assert.Equal(t, Badge{Text: "onhold", Visible: true}, r.Badge)

	r, _ = l.Row("4")
	assert.False(t, r.Badge.Visible, "approved events start without a badge")
}

func TestRemoveRowsAndPruneDateDivider(t *testing.T) {
	l := sampleListing()

	removed := l.RemoveRows([]string{"3", "missing"})
	assert.Equal(t, 1, removed)

	pruned := l.PruneEmptyDividers()
	assert.Equal(t, 1, pruned)
	assert.Equal(t, []NodeKind{
		MonthDivider, DateDivider, Table,
		MonthDivider, DateDivider, Table,
	}, kinds(l))
	assert.Equal(t, []string{"1", "2", "4"}, l.RowIDs())
}

func TestPruneRemovesEmptyMonth(t *testing.T) {
	l := sampleListing()

	l.RemoveRows([]string{"4"})
	assert.Equal(t, 2, l.PruneEmptyDividers(), "date divider and its month")
	assert.Equal(t, []NodeKind{MonthDivider, DateDivider, Table, DateDivider, Table}, kinds(l))
}

func TestScenarioDeleteThreeRows(t *testing.T) {
	l := sampleListing()

	l.MarkFading([]string{"1", "2", "3"})
	r, _ := l.Row("1")
	assert.True(t, r.Fading)

	assert.Equal(t, 3, l.RemoveRows([]string{"1", "2", "3"}))
	l.PruneEmptyDividers()

	assert.Equal(t, []NodeKind{MonthDivider, DateDivider, Table}, kinds(l))
	assert.Equal(t, []string{"4"}, l.RowIDs())
	assert.Equal(t, "November 2026", l.Nodes()[0].Label)
}

func TestRemovingEverythingLeavesEmptyListing(t *testing.T) {
	l := sampleListing()
	l.RemoveRows(l.RowIDs())
	l.PruneEmptyDividers()

	assert.Empty(t, l.Nodes())
	assert.Zero(t, l.Len())
	assert.Zero(t, l.PruneEmptyDividers())
}

func TestSetBadge(t *testing.T) {
	l := sampleListing()

	l.SetBadge("1", "onhold")
	r, _ := l.Row("1")
	assert.Equal(t, Badge{Text: "onhold", Visible: true}, r.Badge)

	l.SetBadge("1", "")
	assert.False(t, r.Badge.Visible)

	l.SetBadge("missing", "x")
}

func TestCursor(t *testing.T) {
	s := NewAppState()
	s.Listing = sampleListing()

	s.MoveCursor(2)
	assert.Equal(t, "3", s.CurrentRowID())
	s.MoveCursor(10)
	assert.Equal(t, "4", s.CurrentRowID())
	s.MoveCursor(-10)
	assert.Equal(t, "1", s.CurrentRowID())

	s.Listing.RemoveRows([]string{"2", "3", "4"})
	s.Cursor = 3
	s.ClampCursor()
	assert.Equal(t, "1", s.CurrentRowID())
}

func TestBannerTimerOnlyClearsItsOwnBanner(t *testing.T) {
	s := NewAppState()
	first := s.ShowBanner("first", true)
	second := s.ShowBanner("second", false)

	s.ClearBanner(first)
	assert.Equal(t, "second", s.Banner.Text)

	s.ClearBanner(second)
	assert.Empty(t, s.Banner.Text)
}

func TestLinesAndLineOf(t *testing.T) {
	l := sampleListing()

	lines := l.Lines()
	require.Len(t, lines, 9)
	assert.Equal(t, MonthDivider, lines[0].Kind)
	assert.Equal(t, "October 2026", lines[0].Label)
	assert.Equal(t, DateDivider, lines[1].Kind)
	assert.Equal(t, "1", lines[2].Row.ID())

	assert.Equal(t, 2, l.LineOf("1"))
	assert.Equal(t, 3, l.LineOf("2"))
	assert.Equal(t, 5, l.LineOf("3"))
	assert.Equal(t, 8, l.LineOf("4"))
	assert.Equal(t, -1, l.LineOf("missing"))
}

func TestEnsureCursorVisible(t *testing.T) {
	s := NewAppState()
	s.Listing = sampleListing()
	s.ViewportHeight = 3

	s.MoveCursor(3) // row 4, line 8
	s.EnsureCursorVisible()
	assert.Equal(t, 6, s.ViewportOffset)

	s.MoveCursor(-1) // row 3, line 5, its date divider on line 4
	s.EnsureCursorVisible()
	assert.Equal(t, 4, s.ViewportOffset)

	s.MoveCursor(-10)
	s.EnsureCursorVisible()
	assert.Zero(t, s.ViewportOffset)
}

func TestHideBadge(t *testing.T) {
	l := sampleListing()
	l.HideBadge("2")
	r, _ := l.Row("2")
	assert.False(t, r.Badge.Visible)
	assert.Equal(t, "onhold", r.Badge.Text)
}

func TestReplaceListingBumpsGeneration(t *testing.T) {
	s := NewAppState()
	s.Listing = sampleListing()
	s.MoveCursor(2)
	s.ViewportOffset = 3

	before := s.ListingGen
	s.ReplaceListing(sampleListing())

	assert.Equal(t, before+1, s.ListingGen)
	assert.Equal(t, "1", s.CurrentRowID())
	assert.Zero(t, s.ViewportOffset)
}
