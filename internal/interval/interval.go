package interval

import (
	"fmt"
	"sort"
	"time"
)

// InvalidIntervalError is returned when an interval would end before it starts
type InvalidIntervalError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: end %s is before start %s",
		e.End.Format(time.DateTime), e.Start.Format(time.DateTime))
}

// Interval is an immutable half-open time span [start, end)
type Interval struct {
	start time.Time
	end   time.Time
}

// New creates an interval. Equal bounds give a zero-width interval.
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, &InvalidIntervalError{Start: start, End: end}
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) Start() time.Time { return i.start }
func (i Interval) End() time.Time   { return i.end }

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// IsEmpty reports whether the interval covers no time at all
func (i Interval) IsEmpty() bool {
	return !i.end.After(i.start)
}

// Equal compares bounds by instant
func (i Interval) Equal(other Interval) bool {
	return i.start.Equal(other.start) && i.end.Equal(other.end)
}

// Compare orders by start, then by end. It returns -1, 0 or +1.
func (i Interval) Compare(other Interval) int {
	if c := i.start.Compare(other.start); c != 0 {
		return c
	}
	return i.end.Compare(other.end)
}

// OverlapsOrTouches reports whether the two spans share time or a boundary.
// [a,b) and [b,c) touch.
func (i Interval) OverlapsOrTouches(other Interval) bool {
	return !i.start.After(other.end) && !other.start.After(i.end)
}

// Intersects reports whether each span starts before the other ends.
// Touching spans do not intersect; a zero-width span does when it lies
// strictly inside the other.
func (i Interval) Intersects(other Interval) bool {
	return i.start.Before(other.end) && other.start.Before(i.end)
}

// Merge joins two overlapping or touching intervals into [min(start), max(end))
func (i Interval) Merge(other Interval) (Interval, error) {
	if !i.OverlapsOrTouches(other) {
		return Interval{}, fmt.Errorf("cannot merge disjoint intervals %s and %s", i, other)
	}
	merged := i
	if other.start.Before(merged.start) {
		merged.start = other.start
	}
	if other.end.After(merged.end) {
		merged.end = other.end
	}
	return merged, nil
}

// Clip returns the part of i that lies inside bounds. The result is empty
// (and positioned at the nearest bound) when they do not intersect.
func (i Interval) Clip(bounds Interval) Interval {
	clipped := i
	if clipped.start.Before(bounds.start) {
		clipped.start = bounds.start
	}
	if clipped.end.After(bounds.end) {
		clipped.end = bounds.end
	}
	if clipped.end.Before(clipped.start) {
		clipped.end = clipped.start
	}
	return clipped
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.start.Format(time.DateTime), i.end.Format(time.DateTime))
}

// Sort orders intervals in place by start, earlier end first on ties
func Sort(intervals []Interval) {
	sort.SliceStable(intervals, func(a, b int) bool {
		return intervals[a].Compare(intervals[b]) < 0
	})
}
