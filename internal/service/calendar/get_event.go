package calendar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// GetEvent returns an event visible to the actor, or nil.
func (s *Service) GetEvent(ctx context.Context, eventID uuid.UUID, actorID int64) (*domain.Event, error) {
	if eventID == uuid.Nil || actorID <= 0 {
		return nil, domain.NewValidationError("event_id", "required")
	}

	actor, err := s.lookupUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("calendar.GetEvent: %w", err)
	}

	e, err := s.visibleEvent(ctx, eventID, actorID, actor)
	if err != nil {
		return nil, fmt.Errorf("calendar.GetEvent: %w", err)
	}
	return e, nil
}

// ListEvents returns the events the user participates in, or only those
// the user created when CreatedOnly is set.
func (s *Service) ListEvents(ctx context.Context, input ListEventsInput) ([]domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		events []domain.Event
		err    error
	)
	if input.CreatedOnly {
		events, err = s.events.ListByCreatorInRange(ctx, input.UserID, *input.From, *input.To)
	} else {
		events, err = s.events.ListByParticipant(ctx, input.UserID, input.From, input.To)
	}
	if err != nil {
		return nil, fmt.Errorf("calendar.ListEvents: %w", err)
	}
	return events, nil
}

// MarkNotified records that the partner was told about an event out of band.
// It returns false for unknown events.
func (s *Service) MarkNotified(ctx context.Context, eventID uuid.UUID, actorID int64) (bool, error) {
	e, err := s.GetEvent(ctx, eventID, actorID)
	if err != nil || e == nil {
		return false, err
	}

	if err := s.events.MarkNotified(ctx, e.ID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("calendar.MarkNotified: %w", err)
	}
	return true, nil
}
