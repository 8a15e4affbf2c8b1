package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// CreateUserInput holds parameters for registering a household member.
type CreateUserInput struct {
	ExternalID int64
	Name       string
	// DigestTime defaults to domain.DefaultDigestTime.
	DigestTime string
}

func (i CreateUserInput) digestTime() string {
	if i.DigestTime == "" {
		return domain.DefaultDigestTime
	}
	return i.DigestTime
}

// Validate validates the create user input.
func (i CreateUserInput) Validate() error {
	var errs []domain.FieldError

	if i.ExternalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "external_id", Message: "must be positive"})
	}

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if err := domain.ValidateDigestTime(i.digestTime()); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateUserInput) toUser() domain.User {
	return domain.User{
		ID:         uuid.New(),
		ExternalID: i.ExternalID,
		Name:       strings.TrimSpace(i.Name),
		DigestTime: i.digestTime(),
	}
}
