package domain

import (
	"slices"
	"strings"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval occupied by an event starting at start.
func NewInterval(start time.Time, durationMinutes int) (Interval, error) {
	if start.IsZero() {
		return Interval{}, NewValidationError("start_at", "required")
	}
	if errs := DurationErrors(durationMinutes); len(errs) > 0 {
		return Interval{}, NewValidationErrors(errs)
	}
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// Overlaps reports whether two intervals intersect with non-zero measure.
// Back-to-back intervals (a.End == b.Start) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FindConflicts returns the events from existing that overlap candidate,
// ordered by start time ascending. It never modifies existing.
func FindConflicts(candidate Interval, existing []Event) []Event {
	conflicts := make([]Event, 0)
	for _, e := range existing {
		if e.DurationMinutes <= 0 {
			continue
		}
		if candidate.Overlaps(e.Interval()) {
			conflicts = append(conflicts, e)
		}
	}

	slices.SortStableFunc(conflicts, func(a, b Event) int {
		if c := a.StartAt.Compare(b.StartAt); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return conflicts
}
