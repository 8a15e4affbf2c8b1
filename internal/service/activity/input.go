package activity

import (
	"strings"
	"time"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// SaveActivityInput holds the extracted activity fields.
type SaveActivityInput struct {
	Title       string
	StartAt     *time.Time
	Price       *int
	Location    *string
	Description *string
	PhotoRef    *string
	SourceURL   string
	// SourceKind defaults to url.
	SourceKind domain.SourceKind
}

func (i SaveActivityInput) toActivity(family domain.FamilyID, now time.Time) domain.Activity {
	kind := i.SourceKind
	if kind == "" {
		kind = domain.SourceKindURL
	}
	return domain.Activity{
		Title:       strings.TrimSpace(i.Title),
		StartAt:     i.StartAt,
		Price:       i.Price,
		Location:    trimmed(i.Location),
		Description: trimmed(i.Description),
		PhotoRef:    trimmed(i.PhotoRef),
		SourceURL:   strings.TrimSpace(i.SourceURL),
		SourceKind:  kind,
		ParsedAt:    now,
		FamilyID:    family,
	}
}

// trimmed drops blank optional strings.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
