package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxEventTitleLength = 200
	// MaxEventDurationMinutes caps a single event at one week.
	MaxEventDurationMinutes = 7 * 24 * 60
)

// Event is a shared calendar entry.
type Event struct {
	ID              uuid.UUID
	Title           string
	StartAt         time.Time
	DurationMinutes int
	CreatorID       int64
	Status          EventStatus
	Category        EventCategory
	PartnerNotified bool
	CreatedAt       time.Time
}

// EndAt returns the exclusive end of the event.
func (e *Event) EndAt() time.Time {
	return e.StartAt.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// Interval returns the half-open interval the event occupies.
func (e *Event) Interval() Interval {
	return Interval{Start: e.StartAt, End: e.EndAt()}
}

// Validate checks the event invariants and collects all errors.
func (e *Event) Validate() error {
	var errs []FieldError

	errs = append(errs, validateTitle(e.Title)...)
	if e.StartAt.IsZero() {
		errs = append(errs, FieldError{Field: "start_at", Message: "required"})
	}
	errs = append(errs, DurationErrors(e.DurationMinutes)...)
	if e.CreatorID <= 0 {
		errs = append(errs, FieldError{Field: "creator_id", Message: "must be positive"})
	}
	if !e.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if !e.Category.IsValid() {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// EventUpdateParams holds the fields of a partial event update.
// A nil field is left untouched.
type EventUpdateParams struct {
	Title           *string
	StartAt         *time.Time
	DurationMinutes *int
	Status          *EventStatus
	Category        *EventCategory
	PartnerNotified *bool
}

// IsEmpty reports whether no field is set.
func (p EventUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.StartAt == nil && p.DurationMinutes == nil &&
		p.Status == nil && p.Category == nil && p.PartnerNotified == nil
}

// TouchesTime reports whether the update moves or resizes the event.
func (p EventUpdateParams) TouchesTime() bool {
	return p.StartAt != nil || p.DurationMinutes != nil
}

// Validate checks every present field; any failure rejects the whole update.
func (p EventUpdateParams) Validate() error {
	var errs []FieldError

	if p.IsEmpty() {
		errs = append(errs, FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if p.Title != nil {
		errs = append(errs, validateTitle(*p.Title)...)
	}
	if p.StartAt != nil && p.StartAt.IsZero() {
		errs = append(errs, FieldError{Field: "start_at", Message: "required"})
	}
	if p.DurationMinutes != nil {
		errs = append(errs, DurationErrors(*p.DurationMinutes)...)
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if p.Category != nil && !p.Category.IsValid() {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Apply returns a copy of e with the present fields replaced.
func (p EventUpdateParams) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.StartAt != nil {
		e.StartAt = *p.StartAt
	}
	if p.DurationMinutes != nil {
		e.DurationMinutes = *p.DurationMinutes
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.PartnerNotified != nil {
		e.PartnerNotified = *p.PartnerNotified
	}
	return e
}

// EventParticipant links an event to a participating user.
type EventParticipant struct {
	EventID   uuid.UUID
	UserID    int64
	CreatedAt time.Time
}

func validateTitle(title string) []FieldError {
	t := strings.TrimSpace(title)
	if t == "" {
		return []FieldError{{Field: "title", Message: "required"}}
	}
	if utf8.RuneCountInString(t) > MaxEventTitleLength {
		return []FieldError{{Field: "title", Message: "max 200 characters"}}
	}
	return nil
}

// DurationErrors reports why minutes is not a valid event duration.
func DurationErrors(minutes int) []FieldError {
	if minutes <= 0 {
		return []FieldError{{Field: "duration_minutes", Message: "must be positive"}}
	}
	if minutes > MaxEventDurationMinutes {
		return []FieldError{{Field: "duration_minutes", Message: "max one week"}}
	}
	return nil
}

// EventOverlapQuery selects the events of a set of users that intersect
// [From, To).
type EventOverlapQuery struct {
	UserIDs []int64
	// IncludeParticipants also matches events in which any of UserIDs
	// participates without being the creator.
	IncludeParticipants bool
	From                time.Time
	To                  time.Time
	ExcludeID           uuid.UUID
}
