package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// UpdateEvent applies a partial update. It returns false when the event does
// not exist or is outside the actor's family. The creator's family is locked
// before the event is read; moving or resizing the event re-runs the family
// conflict check under that lock.
func (s *Service) UpdateEvent(ctx context.Context, input UpdateEventInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	actor, err := s.lookupUser(ctx, input.ActorID)
	if err != nil {
		return false, fmt.Errorf("calendar.UpdateEvent: %w", err)
	}

	var updated *domain.Event
	found := true

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The creator is immutable, so its family is known before locking.
		head, err := s.events.GetByID(txCtx, input.EventID)
		if err != nil {
			if isNotFound(err) {
				found = false
				return nil
			}
			return err
		}
		sc, err := s.resolveScope(txCtx, head.CreatorID, domain.ConflictScopeFamily)
		if err != nil {
			return err
		}
		if err := s.tx.LockFamily(txCtx, sc.family); err != nil {
			return err
		}

		current, err := s.visibleEvent(txCtx, input.EventID, input.ActorID, actor)
		if err != nil {
			return err
		}
		if current == nil {
			found = false
			return nil
		}

		if input.Params.TouchesTime() {
			next := input.Params.Apply(*current)
			conflicts, err := s.conflictsIn(txCtx, sc, next.Interval(), current.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 && !input.AllowConflict {
				return &domain.ConflictError{Conflicts: conflicts}
			}
		}

		updated, err = s.events.Update(txCtx, current.ID, input.Params)
		if err != nil {
			if isNotFound(err) {
				found = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("calendar.UpdateEvent: %w", err)
	}
	if !found {
		return false, nil
	}

	s.log.InfoContext(ctx, "event updated",
		slog.String("event_id", updated.ID.String()),
		slog.Int64("actor_id", input.ActorID))

	if input.NotifyPartner {
		s.notifyPartner(ctx, domain.NotificationUpdated, actor, *updated)
	}
	return true, nil
}

// visibleEvent loads an event if it belongs to the actor's family. Events
// outside the family look exactly like missing ones.
func (s *Service) visibleEvent(ctx context.Context, id uuid.UUID, actorID int64, actor *domain.User) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if e.CreatorID == actorID {
		return e, nil
	}
	if actor != nil && actor.HasPartner() && e.CreatorID == actor.PartnerID() {
		return e, nil
	}

	// Invited without being family (e.g. a partner who has since unlinked).
	mine, err := s.events.ListByParticipant(ctx, actorID, &e.StartAt, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range mine {
		if m.ID == e.ID {
			return e, nil
		}
	}
	return nil, nil
}
