package calendar

import (
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// AvailabilityResult is the answer to "is this slot free?".
type AvailabilityResult struct {
	Available bool
	Conflicts []domain.Event
	// Advisories are family facts overlapping the slot. They never make
	// the slot unavailable.
	Advisories []domain.FamilyFact
}

// ScheduleResult is returned after a successful booking.
type ScheduleResult struct {
	Event domain.Event
	// Conflicts is non-empty only when the booking was forced.
	Conflicts       []domain.Event
	Advisories      []domain.FamilyFact
	PartnerNotified bool
}

// Agenda is the family-visible view of a local period.
type Agenda struct {
	From   time.Time
	To     time.Time
	Events []domain.Event
	Facts  []domain.FamilyFact
}
