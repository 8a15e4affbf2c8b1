package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// ScheduleEvent books an event. The conflict check and the insert run in one
// transaction holding the creator's family lock, so two concurrent bookings
// for the same family cannot both pass the check.
//
// An overlap returns *domain.ConflictError unless AllowConflict is set.
// Partner notification happens after commit and never fails the booking.
func (s *Service) ScheduleEvent(ctx context.Context, input ScheduleEventInput) (*ScheduleResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	creator, err := s.lookupUser(ctx, input.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("calendar.ScheduleEvent: %w", err)
	}
	if creator == nil {
		return nil, domain.NewValidationError("creator_id", "unknown user")
	}

	event := input.toEvent()
	candidate := event.Interval()

	var (
		created   *domain.Event
		conflicts []domain.Event
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sc, err := s.resolveScope(txCtx, creator.ExternalID, input.conflictScope())
		if err != nil {
			return err
		}
		if err := s.tx.LockFamily(txCtx, creator.FamilyID()); err != nil {
			return err
		}

		conflicts, err = s.conflictsIn(txCtx, sc, candidate, event.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 && !input.AllowConflict {
			return &domain.ConflictError{Conflicts: conflicts}
		}

		created, err = s.events.Create(txCtx, &event)
		if err != nil {
			return err
		}

		participants := []int64{creator.ExternalID}
		if input.participants() == domain.ParticipantScopeBoth && creator.HasPartner() {
			participants = append(participants, creator.PartnerID())
		}
		return s.events.AddParticipants(txCtx, created.ID, participants)
	})
	if err != nil {
		return nil, fmt.Errorf("calendar.ScheduleEvent: %w", err)
	}

	result := &ScheduleResult{
		Event:      *created,
		Conflicts:  []domain.Event{},
		Advisories: s.advisoriesFor(ctx, creator.FamilyID(), candidate),
	}
	if input.AllowConflict {
		result.Conflicts = conflicts
	}

	s.log.InfoContext(ctx, "event scheduled",
		slog.String("event_id", created.ID.String()),
		slog.Int64("creator_id", creator.ExternalID),
		slog.String("family_id", creator.FamilyID().String()),
		slog.Int("forced_conflicts", len(result.Conflicts)))

	if input.NotifyPartner && s.notifyPartner(ctx, domain.NotificationCreated, creator, *created) {
		if err := s.events.MarkNotified(ctx, created.ID); err != nil {
			s.log.WarnContext(ctx, "mark notified failed",
				slog.String("event_id", created.ID.String()),
				slog.String("error", err.Error()))
		} else {
			result.PartnerNotified = true
			result.Event.PartnerNotified = true
		}
	}

	return result, nil
}
