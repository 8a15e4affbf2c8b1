package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// CreateUser registers a household member. A taken external id is
// domain.ErrAlreadyExists.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u := input.toUser()
	created, err := s.users.Create(ctx, &u)
	if err != nil {
		return nil, fmt.Errorf("user.CreateUser: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.Int64("external_id", created.ExternalID),
		slog.String("user_id", created.ID.String()))

	return created, nil
}

// GetUser returns the user with the given external id, or nil when unknown.
func (s *Service) GetUser(ctx context.Context, externalID int64) (*domain.User, error) {
	if externalID <= 0 {
		return nil, domain.NewValidationError("external_id", "must be positive")
	}

	u, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("user.GetUser: %w", err)
	}
	return u, nil
}

// FamilyOf resolves the family of a user. An unregistered user forms a
// family of one and is returned as nil.
func (s *Service) FamilyOf(ctx context.Context, externalID int64) (*domain.User, domain.FamilyID, error) {
	u, err := s.GetUser(ctx, externalID)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, domain.ResolveFamilyID(externalID, 0), nil
	}
	return u, u.FamilyID(), nil
}

// UpdateDigestTime changes the local time of the user's daily agenda.
func (s *Service) UpdateDigestTime(ctx context.Context, externalID int64, digestTime string) (*domain.User, error) {
	if err := domain.ValidateDigestTime(digestTime); err != nil {
		return nil, err
	}

	u, err := s.users.UpdateDigestTime(ctx, externalID, digestTime)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateDigestTime: %w", err)
	}

	s.log.InfoContext(ctx, "digest time updated",
		slog.Int64("external_id", externalID),
		slog.String("digest_time", digestTime))

	return u, nil
}

// UsersWithDigestAt returns the users whose digest is due at hhmm.
func (s *Service) UsersWithDigestAt(ctx context.Context, hhmm string) ([]domain.User, error) {
	if err := domain.ValidateDigestTime(hhmm); err != nil {
		return nil, err
	}

	users, err := s.users.ListByDigestTime(ctx, hhmm)
	if err != nil {
		return nil, fmt.Errorf("user.UsersWithDigestAt: %w", err)
	}
	return users, nil
}
