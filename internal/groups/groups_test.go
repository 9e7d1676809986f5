package groups

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmod/internal/domain"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestByDateGroupsMonthsAndDays(t *testing.T) {
	events := []domain.Event{
		{ID: "3", Name: "Soldering", Start: at("2026-11-02 18:00")},
		{ID: "1", Name: "Board games", Start: at("2026-10-20 19:00")},
		{ID: "2", Name: "Arduino", Start: at("2026-10-20 19:00")},
		{ID: "4", Name: "Early bird", Start: at("2026-10-20 08:00")},
		{ID: "5", Name: "Open house", Start: at("2026-10-31 12:00")},
	}

	months := ByDate(events, time.UTC)

	require.Len(t, months, 2)
	assert.Equal(t, "October 2026", months[0].Label)
	assert.Equal(t, "November 2026", months[1].Label)

	oct := months[0]
	require.Len(t, oct.Days, 2)
	assert.Equal(t, "2026-10-20", oct.Days[0].Key)
	assert.Equal(t, "Tuesday, October 20", oct.Days[0].Label)

	var ids []string
	for _, ev := range oct.Days[0].Events {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"4", "2", "1"}, ids)
	assert.Equal(t, "5", oct.Days[1].Events[0].ID)
	assert.Equal(t, "3", months[1].Days[0].Events[0].ID)
}

func TestByDateUsesLocation(t *testing.T) {
	pacific := time.FixedZone("PST", -8*3600)
	events := []domain.Event{{ID: "1", Start: at("2026-11-01 03:00")}}

	months := ByDate(events, pacific)

	require.Len(t, months, 1)
	assert.Equal(t, "2026-10", months[0].Key)
	assert.Equal(t, "2026-10-31", months[0].Days[0].Key)
}

func TestByDateEmpty(t *testing.T) {
	assert.Empty(t, ByDate(nil, time.UTC))
}

func TestFilterForView(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Status: domain.StatusPending},
		{ID: "2", Status: domain.StatusApproved},
		{ID: "3", Status: domain.StatusOnHold},
		{ID: "4", Status: domain.StatusDeleted},
	}

	pending := FilterForView(events, domain.ViewPending)
	require.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].ID)
	assert.Equal(t, "3", pending[1].ID)

	assert.Len(t, FilterForView(events, domain.ViewOther), 3)
}
