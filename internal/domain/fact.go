package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FamilyFact is a recurring daily constraint the family mentioned once
// (working hours, nap window). It is advisory only: scheduling surfaces
// overlaps to the caller and never rejects because of a fact.
type FamilyFact struct {
	ID       uuid.UUID
	FamilyID FamilyID
	Label    string
	// Minutes since local midnight; End > Start.
	StartMinute int
	EndMinute   int
	CreatedAt   time.Time
}

// Window renders the fact window as HH:MM-HH:MM.
func (f *FamilyFact) Window() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		f.StartMinute/60, f.StartMinute%60, f.EndMinute/60, f.EndMinute%60)
}

// Overlaps reports whether the daily window intersects iv on any local day
// iv touches.
func (f *FamilyFact) Overlaps(iv Interval, loc *time.Location) bool {
	start := iv.Start.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	for !day.After(iv.End.In(loc)) {
		w := Interval{
			Start: day.Add(time.Duration(f.StartMinute) * time.Minute),
			End:   day.Add(time.Duration(f.EndMinute) * time.Minute),
		}
		if w.Overlaps(iv) {
			return true
		}
		day = day.AddDate(0, 0, 1)
	}
	return false
}

// Validate checks the window bounds.
func (f *FamilyFact) Validate() error {
	var errs []FieldError
	if f.Label == "" {
		errs = append(errs, FieldError{Field: "label", Message: "required"})
	}
	if f.StartMinute < 0 || f.StartMinute >= 24*60 {
		errs = append(errs, FieldError{Field: "start", Message: "out of range"})
	}
	if f.EndMinute <= f.StartMinute || f.EndMinute > 24*60 {
		errs = append(errs, FieldError{Field: "end", Message: "must be after start"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ParseClock converts HH:MM into minutes since midnight. "24:00" is accepted
// as the end of day.
func ParseClock(field, s string) (int, error) {
	if !digestTimePattern.MatchString(s) {
		return 0, NewValidationError(field, "must match HH:MM")
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, NewValidationError(field, "must match HH:MM")
	}
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, NewValidationError(field, "out of range")
	}
	return h*60 + m, nil
}
