package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// SaveActivity caches an activity for a family and returns its id.
//
// Re-saving the same source for the same family refreshes the existing row
// and returns its id. When a new row pushes the family over capacity, the
// rows with the oldest parsed_at are evicted; the new row is never evicted.
// Saves for one family are serialized by the family lock.
func (s *Service) SaveActivity(ctx context.Context, input SaveActivityInput, familyID string) (uuid.UUID, error) {
	family, err := domain.ParseFamilyID(strings.TrimSpace(familyID))
	if err != nil {
		return uuid.Nil, err
	}

	a := input.toActivity(family, time.Now())
	if err := a.Validate(); err != nil {
		return uuid.Nil, err
	}

	var (
		id      uuid.UUID
		refresh bool
		evicted int64
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tx.LockFamily(txCtx, family); err != nil {
			return err
		}

		existing, err := s.repo.FindBySource(txCtx, family, a.SourceURL)
		switch {
		case err == nil:
			a.ID = existing.ID
			if _, err := s.repo.Update(txCtx, &a); err != nil {
				return err
			}
			id, refresh = existing.ID, true
			return nil
		case !isNotFound(err):
			return err
		}

		a.ID = uuid.New()
		created, err := s.repo.Create(txCtx, &a)
		if err != nil {
			return err
		}
		id = created.ID

		count, err := s.repo.CountByFamily(txCtx, family)
		if err != nil {
			return err
		}
		if over := count - s.cfg.Capacity; over > 0 {
			evicted, err = s.repo.DeleteOldest(txCtx, family, over, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("activity.SaveActivity: %w", err)
	}

	s.log.InfoContext(ctx, "activity saved",
		slog.String("activity_id", id.String()),
		slog.String("family_id", family.String()),
		slog.Bool("refreshed", refresh),
		slog.Int64("evicted", evicted))

	return id, nil
}
