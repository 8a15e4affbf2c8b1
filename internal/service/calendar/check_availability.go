package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// CheckAvailability reports whether a slot is free for the input scope and
// which family facts it touches. Conflicts and facts are loaded concurrently.
func (s *Service) CheckAvailability(ctx context.Context, input FindConflictsInput) (*AvailabilityResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sc, err := s.resolveScope(ctx, input.UserID, input.scope())
	if err != nil {
		return nil, fmt.Errorf("calendar.CheckAvailability: %w", err)
	}

	candidate, err := domain.NewInterval(input.Start, input.DurationMinutes)
	if err != nil {
		return nil, err
	}

	var (
		conflicts  []domain.Event
		advisories []domain.FamilyFact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conflicts, err = s.conflictsIn(gctx, sc, candidate, input.ExcludeEventID)
		return err
	})
	g.Go(func() error {
		advisories = s.advisoriesFor(gctx, sc.family, candidate)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("calendar.CheckAvailability: %w", err)
	}

	return &AvailabilityResult{
		Available:  len(conflicts) == 0,
		Conflicts:  conflicts,
		Advisories: advisories,
	}, nil
}

// advisoriesFor returns the family facts overlapping iv. Facts are advisory,
// so a lookup failure is logged and yields none.
func (s *Service) advisoriesFor(ctx context.Context, family domain.FamilyID, iv domain.Interval) []domain.FamilyFact {
	facts, err := s.facts.ListByFamily(ctx, family)
	if err != nil {
		s.log.WarnContext(ctx, "family facts unavailable",
			slog.String("family_id", family.String()),
			slog.String("error", err.Error()))
		return []domain.FamilyFact{}
	}

	out := make([]domain.FamilyFact, 0, len(facts))
	for _, f := range facts {
		if f.Overlaps(iv, s.loc) {
			out = append(out, f)
		}
	}
	return out
}
