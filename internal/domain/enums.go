package domain

import "fmt"

// EventStatus represents the lifecycle state of a calendar event.
type EventStatus string

const (
	EventStatusProposed  EventStatus = "proposed"
	EventStatusConfirmed EventStatus = "confirmed"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusProposed, EventStatusConfirmed:
		return true
	}
	return false
}

// ParseEventStatus converts a raw value into an EventStatus.
// Unknown values are rejected, never coerced.
func ParseEventStatus(raw string) (EventStatus, error) {
	s := EventStatus(raw)
	if !s.IsValid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown status %q", raw))
	}
	return s, nil
}

// EventCategory groups events for display and digest.
type EventCategory string

const (
	EventCategoryKids       EventCategory = "kids"
	EventCategoryHome       EventCategory = "home"
	EventCategoryRenovation EventCategory = "renovation"
	EventCategoryPersonal   EventCategory = "personal"
)

func (c EventCategory) String() string { return string(c) }

func (c EventCategory) IsValid() bool {
	switch c {
	case EventCategoryKids, EventCategoryHome, EventCategoryRenovation, EventCategoryPersonal:
		return true
	}
	return false
}

// ParseEventCategory converts a raw value into an EventCategory.
func ParseEventCategory(raw string) (EventCategory, error) {
	c := EventCategory(raw)
	if !c.IsValid() {
		return "", NewValidationError("category", fmt.Sprintf("unknown category %q", raw))
	}
	return c, nil
}

// ConflictScope selects the event set a conflict check runs against.
type ConflictScope string

const (
	// ConflictScopeCreator checks only events created by the acting user.
	ConflictScopeCreator ConflictScope = "creator"
	// ConflictScopeFamily checks every event visible to the family: created by
	// either partner or with either partner as a participant.
	ConflictScopeFamily ConflictScope = "family"
)

func (s ConflictScope) String() string { return string(s) }

func (s ConflictScope) IsValid() bool {
	switch s {
	case ConflictScopeCreator, ConflictScopeFamily:
		return true
	}
	return false
}

// ParticipantScope controls who is recorded as an event participant.
type ParticipantScope string

const (
	ParticipantScopeSelf ParticipantScope = "self"
	ParticipantScopeBoth ParticipantScope = "both"
)

func (s ParticipantScope) String() string { return string(s) }

func (s ParticipantScope) IsValid() bool {
	switch s {
	case ParticipantScopeSelf, ParticipantScopeBoth:
		return true
	}
	return false
}

// SourceKind identifies where an activity was discovered.
type SourceKind string

const (
	SourceKindForwardedMessage SourceKind = "forwarded_message"
	SourceKindURL              SourceKind = "url"
)

func (k SourceKind) String() string { return string(k) }

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindForwardedMessage, SourceKindURL:
		return true
	}
	return false
}

// NotificationKind describes what happened to an event a partner is told about.
type NotificationKind string

const (
	NotificationCreated   NotificationKind = "created"
	NotificationUpdated   NotificationKind = "updated"
	NotificationCancelled NotificationKind = "cancelled"
)

func (k NotificationKind) String() string { return string(k) }

// Verb returns the past-tense phrase used in partner messages.
func (k NotificationKind) Verb() string {
	switch k {
	case NotificationCreated:
		return "booked"
	case NotificationCancelled:
		return "cancelled"
	default:
		return "changed"
	}
}
