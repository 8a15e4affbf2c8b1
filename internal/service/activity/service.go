// Package activity implements the per-family activity cache: deduplicated
// saves with bounded capacity, listing, ingestion from links and the
// preference filter.
package activity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/provider"
)

// activityRepo defines the activity store interface needed by the service.
type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	FindBySource(ctx context.Context, family domain.FamilyID, sourceURL string) (*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	CountByFamily(ctx context.Context, family domain.FamilyID) (int, error)
	DeleteOldest(ctx context.Context, family domain.FamilyID, n int, keep uuid.UUID) (int64, error)
	List(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID, family domain.FamilyID) error
	DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// txManager runs a function in one transaction and serializes a family.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockFamily(ctx context.Context, familyID domain.FamilyID) error
}

// contentFetcher extracts page metadata from a link.
type contentFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (*provider.PageResult, error)
}

// Config holds the cache limits.
type Config struct {
	Capacity      int
	FetchTimeout  time.Duration
	RetentionDays int
}

// Service implements the activity cache operations.
type Service struct {
	log     *slog.Logger
	repo    activityRepo
	tx      txManager
	fetcher contentFetcher
	loc     *time.Location
	cfg     Config
}

// NewService creates a new activity service.
func NewService(
	logger *slog.Logger,
	repo activityRepo,
	tx txManager,
	fetcher contentFetcher,
	loc *time.Location,
	cfg Config,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = domain.DefaultActivityCapacity
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 20 * time.Second
	}
	return &Service{
		log:     logger.With("service", "activity"),
		repo:    repo,
		tx:      tx,
		fetcher: fetcher,
		loc:     loc,
		cfg:     cfg,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
