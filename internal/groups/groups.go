package groups

import (
	"sort"
	"strings"
	"time"

	"eventmod/internal/domain"
)

// Month groups the days of one calendar month
type Month struct {
	Key   string // "2006-01"
	Label string // "January 2006"
	Days  []Day
}

// Day groups the events starting on one date
type Day struct {
	Key    string // "2006-01-02"
	Label  string // "Monday, January 2"
	Events []domain.Event
}

// ByDate arranges events into months and days by start time, earliest
// first. Events on the same day keep start-time order, ties broken by name.
func ByDate(events []domain.Event, loc *time.Location) []Month {
	if loc == nil {
		loc = time.Local
	}

	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	var months []Month
	for _, ev := range sorted {
		start := ev.Start.In(loc)
		monthKey := start.Format("2006-01")
		dayKey := start.Format("2006-01-02")

		if len(months) == 0 || months[len(months)-1].Key != monthKey {
			months = append(months, Month{
				Key:   monthKey,
				Label: start.Format("January 2006"),
			})
		}
		month := &months[len(months)-1]

		if len(month.Days) == 0 || month.Days[len(month.Days)-1].Key != dayKey {
			month.Days = append(month.Days, Day{
				Key:   dayKey,
				Label: start.Format("Monday, January 2"),
			})
		}
		day := &month.Days[len(month.Days)-1]
		day.Events = append(day.Events, ev)
	}
	return months
}

// FilterForView keeps the events the view lists
func FilterForView(events []domain.Event, view domain.ViewMode) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if view.Shows(ev.Status) {
			out = append(out, ev)
		}
	}
	return out
}
