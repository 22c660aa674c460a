// Package schedule works out which parts of a calendar day are still free.
//
// Everything here is a pure function of its inputs: nothing is cached,
// nothing is written, and the items passed in are only read.
package schedule

import (
	"time"

	"github.com/tgienger/byteme/internal/interval"
)

// Scheduled is anything that may occupy time on a calendar.
// ok is false for items without a time component.
type Scheduled interface {
	Span() (start, end time.Time, ok bool)
}

// DayBoundary returns [midnight(day), midnight(day+1)) in day's location.
// Where the clock skips midnight the day starts at the first instant
// that carries its date.
func DayBoundary(day time.Time) interval.Interval {
	y, m, d := day.Date()
	bounds, _ := interval.New(dayStart(y, m, d, day.Location()), dayStart(y, m, d+1, day.Location()))
	return bounds
}

func dayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if start.Day() == time.Date(y, m, d, 12, 0, 0, 0, loc).Day() {
		return start
	}
	// time.Date normalized a skipped midnight back into the previous day
	_, transition := start.ZoneBounds()
	return transition
}

// FindFreeSlots returns the free intervals of day, ordered by start.
//
// Any item whose span ends before it starts aborts the query with an
// *interval.InvalidIntervalError, even when that item is on another day.
func FindFreeSlots[S Scheduled](day time.Time, items []S) ([]interval.Interval, error) {
	busy, err := BusySlots(day, items)
	if err != nil {
		return nil, err
	}

	return FreeSlotsWithin(DayBoundary(day), busy), nil
}

// BusySlots returns the merged, disjoint busy intervals of day. Spans are
// clipped to the day; zero-width spans (deadlines) are left out.
func BusySlots[S Scheduled](day time.Time, items []S) ([]interval.Interval, error) {
	bounds := DayBoundary(day)

	var spans []interval.Interval
	for _, item := range items {
		start, end, ok := item.Span()
		if !ok {
			continue
		}
		span, err := interval.New(start, end)
		if err != nil {
			return nil, err
		}
		if !span.Intersects(bounds) {
			continue
		}
		spans = append(spans, span.Clip(bounds))
	}

	return MergeIntervals(spans), nil
}

// MergeIntervals sorts a copy of intervals and folds every overlapping or
// touching run into one interval. Empty intervals are dropped.
func MergeIntervals(intervals []interval.Interval) []interval.Interval {
	sorted := make([]interval.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	interval.Sort(sorted)

	merged := make([]interval.Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if joined, err := current.Merge(next); err == nil {
			current = joined
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// FreeSlotsWithin subtracts an ordered, merged busy list (as returned by
// BusySlots) from bounds
func FreeSlotsWithin(bounds interval.Interval, busy []interval.Interval) []interval.Interval {
	var free []interval.Interval
	cursor := bounds.Start()

	for _, b := range busy {
		if b.Start().After(cursor) {
			free = append(free, mustInterval(cursor, b.Start()))
		}
		if b.End().After(cursor) {
			cursor = b.End()
		}
	}

	if cursor.Before(bounds.End()) {
		free = append(free, mustInterval(cursor, bounds.End()))
	}
	return free
}

// mustInterval is only called with bounds the caller has already ordered
func mustInterval(start, end time.Time) interval.Interval {
	iv, err := interval.New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}
