package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// FindConflicts returns the events of the input scope that overlap the
// candidate slot, ordered by start. Only malformed input is an error; an
// empty result means the slot is free.
func (s *Service) FindConflicts(ctx context.Context, input FindConflictsInput) ([]domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sc, err := s.resolveScope(ctx, input.UserID, input.scope())
	if err != nil {
		return nil, fmt.Errorf("calendar.FindConflicts: %w", err)
	}

	candidate, err := domain.NewInterval(input.Start, input.DurationMinutes)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.conflictsIn(ctx, sc, candidate, input.ExcludeEventID)
	if err != nil {
		return nil, fmt.Errorf("calendar.FindConflicts: %w", err)
	}

	s.log.DebugContext(ctx, "conflicts checked",
		slog.Int64("user_id", input.UserID),
		slog.String("scope", input.scope().String()),
		slog.Int("conflicts", len(conflicts)))

	return conflicts, nil
}

// conflictsIn loads the scope's candidates overlapping the interval and runs
// the exact half-open check on them. Inside RunInTx it reads through the tx.
func (s *Service) conflictsIn(ctx context.Context, sc scope, candidate domain.Interval, exclude uuid.UUID) ([]domain.Event, error) {
	existing, err := s.events.ListOverlapping(ctx, domain.EventOverlapQuery{
		UserIDs:             sc.userIDs,
		IncludeParticipants: sc.includeParticipants,
		From:                candidate.Start,
		To:                  candidate.End,
		ExcludeID:           exclude,
	})
	if err != nil {
		return nil, err
	}
	return domain.FindConflicts(candidate, existing), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
