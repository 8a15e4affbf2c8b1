package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// DeleteEvent cancels an event. It returns false when the event does not
// exist or is outside the actor's family.
func (s *Service) DeleteEvent(ctx context.Context, input DeleteEventInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	actor, err := s.lookupUser(ctx, input.ActorID)
	if err != nil {
		return false, fmt.Errorf("calendar.DeleteEvent: %w", err)
	}

	var deleted *domain.Event

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.visibleEvent(txCtx, input.EventID, input.ActorID, actor)
		if err != nil || current == nil {
			return err
		}

		if err := s.events.Delete(txCtx, current.ID); err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		deleted = current
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("calendar.DeleteEvent: %w", err)
	}
	if deleted == nil {
		return false, nil
	}

	s.log.InfoContext(ctx, "event deleted",
		slog.String("event_id", deleted.ID.String()),
		slog.Int64("actor_id", input.ActorID))

	if input.NotifyPartner {
		s.notifyPartner(ctx, domain.NotificationCancelled, actor, *deleted)
	}
	return true, nil
}
