// Package user manages household members, partner links and digest times.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
	GetByExternalIDForUpdate(ctx context.Context, externalID int64) (*domain.User, error)
	SetPartner(ctx context.Context, externalID, partnerID int64) error
	UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error)
	ListByDigestTime(ctx context.Context, hhmm string) ([]domain.User, error)
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements user and partner operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	tx    txManager
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		tx:    tx,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
