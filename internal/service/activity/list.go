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

// ListActivities returns a family's cached activities ordered by start
// (undated last), then newest parsed first. With a date, only activities
// starting on that local day are returned.
func (s *Service) ListActivities(ctx context.Context, familyID string, date *time.Time) ([]domain.Activity, error) {
	family, err := domain.ParseFamilyID(strings.TrimSpace(familyID))
	if err != nil {
		return nil, err
	}

	filter := domain.ActivityFilter{FamilyID: family, Limit: s.cfg.Capacity}
	if date != nil {
		local := date.In(s.loc)
		from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
		to := from.AddDate(0, 0, 1)
		filter.From, filter.To = &from, &to
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity.ListActivities: %w", err)
	}
	return list, nil
}

// DeleteActivity removes an activity of the family. It returns false when
// the activity does not exist or belongs to another family.
func (s *Service) DeleteActivity(ctx context.Context, id uuid.UUID, familyID string) (bool, error) {
	family, err := domain.ParseFamilyID(strings.TrimSpace(familyID))
	if err != nil {
		return false, err
	}
	if id == uuid.Nil {
		return false, domain.NewValidationError("activity_id", "required")
	}

	deleted := true
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id, family); err != nil {
			if isNotFound(err) {
				deleted = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("activity.DeleteActivity: %w", err)
	}

	if deleted {
		s.log.InfoContext(ctx, "activity deleted",
			slog.String("activity_id", id.String()),
			slog.String("family_id", family.String()))
	}
	return deleted, nil
}

// PurgeStale removes activities that started more than the retention period
// before now. Undated activities are kept.
func (s *Service) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	if s.cfg.RetentionDays <= 0 {
		return 0, domain.NewValidationError("retention_days", "must be positive")
	}

	cutoff := now.AddDate(0, 0, -s.cfg.RetentionDays)

	var n int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		n, err = s.repo.DeleteStartedBefore(txCtx, cutoff)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("activity.PurgeStale: %w", err)
	}

	s.log.InfoContext(ctx, "stale activities purged",
		slog.Int64("deleted", n),
		slog.Time("cutoff", cutoff))
	return n, nil
}
