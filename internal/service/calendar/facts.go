package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// RememberFact stores a daily window for the user's family. A fact with the
// same label is replaced.
func (s *Service) RememberFact(ctx context.Context, input RememberFactInput) (*domain.FamilyFact, error) {
	f, err := input.toFact()
	if err != nil {
		return nil, err
	}

	sc, err := s.resolveScope(ctx, input.UserID, domain.ConflictScopeCreator)
	if err != nil {
		return nil, fmt.Errorf("calendar.RememberFact: %w", err)
	}
	f.FamilyID = sc.family

	saved, err := s.facts.Upsert(ctx, &f)
	if err != nil {
		return nil, fmt.Errorf("calendar.RememberFact: %w", err)
	}

	s.log.InfoContext(ctx, "family fact stored",
		slog.String("family_id", saved.FamilyID.String()),
		slog.String("label", saved.Label),
		slog.String("window", saved.Window()))

	return saved, nil
}

// ListFacts returns the facts of the user's family.
func (s *Service) ListFacts(ctx context.Context, userID int64) ([]domain.FamilyFact, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "required")
	}

	sc, err := s.resolveScope(ctx, userID, domain.ConflictScopeCreator)
	if err != nil {
		return nil, fmt.Errorf("calendar.ListFacts: %w", err)
	}

	facts, err := s.facts.ListByFamily(ctx, sc.family)
	if err != nil {
		return nil, fmt.Errorf("calendar.ListFacts: %w", err)
	}
	return facts, nil
}
