package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// LinkPartners pairs two users. Both rows are locked and written in one
// transaction.
// Linking an already linked pair is a no-op; a user linked to someone else
// must be unlinked first.
func (s *Service) LinkPartners(ctx context.Context, a, b int64) (domain.FamilyID, error) {
	var errs []domain.FieldError
	if a <= 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "must be positive"})
	}
	if b <= 0 {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "must be positive"})
	}
	if a == b && a > 0 {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "cannot partner with yourself"})
	}
	if len(errs) > 0 {
		return "", &domain.ValidationError{Errors: errs}
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Rows are locked in ascending id order.
		lo, hi := min(a, b), max(a, b)
		ulo, err := s.users.GetByExternalIDForUpdate(txCtx, lo)
		if err != nil {
			return err
		}
		uhi, err := s.users.GetByExternalIDForUpdate(txCtx, hi)
		if err != nil {
			return err
		}
		ua, ub := ulo, uhi
		if a != lo {
			ua, ub = uhi, ulo
		}

		if ua.HasPartner() && ua.PartnerID() != b {
			return domain.NewValidationError("user_id", "already linked to another partner")
		}
		if ub.HasPartner() && ub.PartnerID() != a {
			return domain.NewValidationError("partner_id", "already linked to another partner")
		}

		if err := s.users.SetPartner(txCtx, a, b); err != nil {
			return err
		}
		return s.users.SetPartner(txCtx, b, a)
	})
	if err != nil {
		return "", fmt.Errorf("user.LinkPartners: %w", err)
	}

	family := domain.ResolveFamilyID(a, b)
	s.log.InfoContext(ctx, "partners linked",
		slog.String("family_id", family.String()))

	return family, nil
}

// UnlinkPartner clears the partner link on both sides. Unpaired users are
// left as they are.
func (s *Service) UnlinkPartner(ctx context.Context, externalID int64) error {
	if externalID <= 0 {
		return domain.NewValidationError("user_id", "must be positive")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByExternalID(txCtx, externalID)
		if err != nil {
			return err
		}
		if !u.HasPartner() {
			return nil
		}

		partner := u.PartnerID()
		if err := s.users.SetPartner(txCtx, externalID, 0); err != nil {
			return err
		}
		if err := s.users.SetPartner(txCtx, partner, 0); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("user.UnlinkPartner: %w", err)
	}

	s.log.InfoContext(ctx, "partner unlinked", slog.Int64("external_id", externalID))
	return nil
}
