package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/service/user"
)

// userService is satisfied by *user.Service.
type userService interface {
	GetUser(ctx context.Context, externalID int64) (*domain.User, error)
	CreateUser(ctx context.Context, input user.CreateUserInput) (*domain.User, error)
	UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error)
	LinkPartners(ctx context.Context, a, b int64) (domain.FamilyID, error)
}

// allPhases defines the canonical execution order.
var allPhases = []string{"users", "partners"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Updated  int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline applies a Household idempotently: existing users are updated,
// already linked pairs are left as they are.
type Pipeline struct {
	log     *slog.Logger
	users   userService
	dryRun  bool
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. In dry-run mode nothing is written.
func NewPipeline(log *slog.Logger, users userService, dryRun bool) *Pipeline {
	return &Pipeline{
		log:     log,
		users:   users,
		dryRun:  dryRun,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the phases in order. A failed phase stops the run.
func (p *Pipeline) Run(ctx context.Context, h *Household) error {
	for _, phase := range allPhases {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "users":
			result = p.runUsers(ctx, h.Users)
		case "partners":
			result = p.runPartners(ctx, h.Partners)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("updated", result.Updated),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)

		if result.Err != nil {
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}
	}
	return nil
}

func (p *Pipeline) runUsers(ctx context.Context, users []HouseholdUser) PhaseResult {
	var r PhaseResult
	for _, hu := range users {
		existing, err := p.users.GetUser(ctx, hu.ExternalID)
		if err != nil {
			r.Err = err
			return r
		}

		switch {
		case existing == nil:
			if !p.dryRun {
				if _, err := p.users.CreateUser(ctx, user.CreateUserInput{
					ExternalID: hu.ExternalID,
					Name:       hu.Name,
					DigestTime: hu.DigestTime,
				}); err != nil {
					p.log.Warn("create user", slog.Int64("external_id", hu.ExternalID), slog.String("error", err.Error()))
					r.Errors++
					continue
				}
			}
			r.Inserted++
		case hu.DigestTime != "" && hu.DigestTime != existing.DigestTime:
			if !p.dryRun {
				if _, err := p.users.UpdateDigestTime(ctx, hu.ExternalID, hu.DigestTime); err != nil {
					p.log.Warn("update digest time", slog.Int64("external_id", hu.ExternalID), slog.String("error", err.Error()))
					r.Errors++
					continue
				}
			}
			r.Updated++
		default:
			r.Skipped++
		}
	}
	return r
}

func (p *Pipeline) runPartners(ctx context.Context, pairs [][2]int64) PhaseResult {
	var r PhaseResult
	for _, pair := range pairs {
		a, b := pair[0], pair[1]

		u, err := p.users.GetUser(ctx, a)
		if err != nil {
			r.Err = err
			return r
		}
		if u != nil && u.PartnerID() == b {
			r.Skipped++
			continue
		}
		if p.dryRun {
			r.Inserted++
			continue
		}

		family, err := p.users.LinkPartners(ctx, a, b)
		if err != nil {
			p.log.Warn("link partners", slog.Int64("a", a), slog.Int64("b", b), slog.String("error", err.Error()))
			r.Errors++
			continue
		}
		p.log.Info("partners linked", slog.String("family_id", family.String()))
		r.Inserted++
	}
	return r
}
