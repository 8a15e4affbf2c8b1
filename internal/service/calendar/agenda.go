package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// Agenda returns the family-visible events of the local day containing date.
func (s *Service) Agenda(ctx context.Context, userID int64, date time.Time) (*Agenda, error) {
	local := date.In(s.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return s.AgendaForPeriod(ctx, userID, from, from.AddDate(0, 0, 1))
}

// AgendaForPeriod returns every event overlapping [from, to) that was created
// by the user or partner or that either of them participates in, together
// with the family facts. The period is limited to MaxAgendaDays.
func (s *Service) AgendaForPeriod(ctx context.Context, userID int64, from, to time.Time) (*Agenda, error) {
	var errs []domain.FieldError
	if userID <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !to.After(from) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	} else if to.Sub(from) > MaxAgendaDays*24*time.Hour {
		errs = append(errs, domain.FieldError{Field: "to", Message: fmt.Sprintf("period longer than %d days", MaxAgendaDays)})
	}
	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	sc, err := s.resolveScope(ctx, userID, domain.ConflictScopeFamily)
	if err != nil {
		return nil, fmt.Errorf("calendar.AgendaForPeriod: %w", err)
	}

	agenda := &Agenda{From: from.In(s.loc), To: to.In(s.loc)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.events.ListOverlapping(gctx, domain.EventOverlapQuery{
			UserIDs:             sc.userIDs,
			IncludeParticipants: true,
			From:                from,
			To:                  to,
		})
		agenda.Events = events
		return err
	})
	g.Go(func() error {
		facts, err := s.facts.ListByFamily(gctx, sc.family)
		agenda.Facts = facts
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("calendar.AgendaForPeriod: %w", err)
	}

	if agenda.Facts == nil {
		agenda.Facts = []domain.FamilyFact{}
	}
	return agenda, nil
}
