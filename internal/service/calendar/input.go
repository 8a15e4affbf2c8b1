package calendar

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// MaxAgendaDays bounds AgendaForPeriod.
const MaxAgendaDays = 31

// FindConflictsInput holds parameters for a conflict lookup.
type FindConflictsInput struct {
	Start           time.Time
	DurationMinutes int
	// Scope defaults to family.
	Scope          domain.ConflictScope
	UserID         int64
	ExcludeEventID uuid.UUID
}

func (i FindConflictsInput) scope() domain.ConflictScope {
	if i.Scope == "" {
		return domain.ConflictScopeFamily
	}
	return i.Scope
}

// Validate validates the conflict lookup input.
func (i FindConflictsInput) Validate() error {
	var errs []domain.FieldError

	if i.Start.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start", Message: "required"})
	}
	errs = append(errs, domain.DurationErrors(i.DurationMinutes)...)
	if !i.scope().IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "must be creator or family"})
	}
	if i.UserID <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ScheduleEventInput holds parameters for booking an event.
type ScheduleEventInput struct {
	Title           string
	Start           time.Time
	DurationMinutes int
	Category        domain.EventCategory
	// Status defaults to proposed.
	Status    domain.EventStatus
	CreatorID int64
	// Participants defaults to self.
	Participants  domain.ParticipantScope
	ConflictScope domain.ConflictScope
	NotifyPartner bool
	// AllowConflict books the event even when it overlaps others; the
	// overlaps are still reported in the result.
	AllowConflict bool
}

func (i ScheduleEventInput) toEvent() domain.Event {
	status := i.Status
	if status == "" {
		status = domain.EventStatusProposed
	}
	return domain.Event{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(i.Title),
		StartAt:         i.Start,
		DurationMinutes: i.DurationMinutes,
		CreatorID:       i.CreatorID,
		Status:          status,
		Category:        i.Category,
	}
}

func (i ScheduleEventInput) participants() domain.ParticipantScope {
	if i.Participants == "" {
		return domain.ParticipantScopeSelf
	}
	return i.Participants
}

func (i ScheduleEventInput) conflictScope() domain.ConflictScope {
	if i.ConflictScope == "" {
		return domain.ConflictScopeFamily
	}
	return i.ConflictScope
}

// Validate validates the booking input; all errors are collected.
func (i ScheduleEventInput) Validate() error {
	var errs []domain.FieldError

	e := i.toEvent()
	if err := e.Validate(); err != nil {
		errs = append(errs, err.(*domain.ValidationError).Errors...)
	}
	if !i.participants().IsValid() {
		errs = append(errs, domain.FieldError{Field: "participants", Message: "must be self or both"})
	}
	if !i.conflictScope().IsValid() {
		errs = append(errs, domain.FieldError{Field: "conflict_scope", Message: "must be creator or family"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateEventInput holds parameters for a partial event update.
type UpdateEventInput struct {
	EventID       uuid.UUID
	ActorID       int64
	Params        domain.EventUpdateParams
	AllowConflict bool
	NotifyPartner bool
}

// Validate validates the update input. One invalid field rejects the
// whole update.
func (i UpdateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if i.ActorID <= 0 {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if err := i.Params.Validate(); err != nil {
		errs = append(errs, err.(*domain.ValidationError).Errors...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteEventInput holds parameters for cancelling an event.
type DeleteEventInput struct {
	EventID       uuid.UUID
	ActorID       int64
	NotifyPartner bool
}

// Validate validates the delete input.
func (i DeleteEventInput) Validate() error {
	var errs []domain.FieldError
	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if i.ActorID <= 0 {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEventsInput holds parameters for listing a user's events.
type ListEventsInput struct {
	UserID int64
	From   *time.Time
	To     *time.Time
	// CreatedOnly restricts the list to events the user created; both
	// bounds are then required.
	CreatedOnly bool
}

// Validate validates the list input.
func (i ListEventsInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.From != nil && i.To != nil && !i.To.After(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	}
	if i.CreatedOnly && (i.From == nil || i.To == nil) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "from and to are required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RememberFactInput holds parameters for storing an advisory fact.
type RememberFactInput struct {
	UserID int64
	Label  string
	// Start and End are local HH:MM; End may be 24:00.
	Start string
	End   string
}

func (i RememberFactInput) toFact() (domain.FamilyFact, error) {
	var errs []domain.FieldError

	if i.UserID <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	label := strings.TrimSpace(i.Label)
	if label == "" {
		errs = append(errs, domain.FieldError{Field: "label", Message: "required"})
	} else if utf8.RuneCountInString(label) > 100 {
		errs = append(errs, domain.FieldError{Field: "label", Message: "max 100 characters"})
	}
	start, err := domain.ParseClock("start", i.Start)
	if err != nil {
		errs = append(errs, err.(*domain.ValidationError).Errors...)
	}
	end, err := domain.ParseClock("end", i.End)
	if err != nil {
		errs = append(errs, err.(*domain.ValidationError).Errors...)
	}
	if len(errs) == 0 && end <= start {
		errs = append(errs, domain.FieldError{Field: "end", Message: "must be after start"})
	}

	if len(errs) > 0 {
		return domain.FamilyFact{}, &domain.ValidationError{Errors: errs}
	}
	return domain.FamilyFact{ID: uuid.New(), Label: label, StartMinute: start, EndMinute: end}, nil
}
