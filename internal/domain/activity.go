package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultActivityCapacity is the maximum number of cached activities per family.
const DefaultActivityCapacity = 100

// MaxActivityTitleLength is counted in characters, not bytes.
const MaxActivityTitleLength = 300

// Activity is an externally discovered suggestion cached for a family.
type Activity struct {
	ID          uuid.UUID
	Title       string
	StartAt     *time.Time
	Price       *int
	Location    *string
	Description *string
	PhotoRef    *string
	SourceURL   string
	SourceKind  SourceKind
	ParsedAt    time.Time
	FamilyID    FamilyID
}

// Validate checks the activity fields that do not depend on storage.
func (a *Activity) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(a.Title) > MaxActivityTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "max 300 characters"})
	}
	if a.Price != nil && *a.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "must be non-negative"})
	}
	if err := validateSourceURL(a.SourceURL); err != "" {
		errs = append(errs, FieldError{Field: "source_url", Message: err})
	}
	if !a.SourceKind.IsValid() {
		errs = append(errs, FieldError{Field: "source_kind", Message: "unknown source kind"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func validateSourceURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "required"
	}
	if len(raw) > 2048 {
		return "max 2048 characters"
	}
	// Forwarded messages use a synthetic tg:// or msg:// reference, so only
	// the presence of a scheme is enforced.
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "must be an absolute URL"
	}
	return ""
}

// Preferences narrows a list of activities down to what suits the family.
// A nil or empty dimension never excludes anything.
type Preferences struct {
	Interests []string
	ChildAges []int
	Location  string
	MaxPrice  *int
}

// ActivityFilter narrows an activity listing to one family. A nil bound is
// open; Limit <= 0 means no limit.
type ActivityFilter struct {
	FamilyID FamilyID
	From     *time.Time
	To       *time.Time
	Limit    int
}
