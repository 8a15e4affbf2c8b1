package activity

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// IngestURL fetches a link, extracts its title, description and preview
// image, and caches the result for the family.
//
// A fetch that times out or fails yields (nil, nil): no activity extracted.
// Only a bad family id or URL and storage failures are errors.
func (s *Service) IngestURL(ctx context.Context, rawURL, familyID string) (*domain.Activity, error) {
	family, err := domain.ParseFamilyID(strings.TrimSpace(familyID))
	if err != nil {
		return nil, err
	}

	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.NewValidationError("url", "must be an http(s) URL")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	page, err := s.fetcher.FetchPage(fetchCtx, rawURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			err = domain.ErrFetchTimeout
		}
		s.log.WarnContext(ctx, "no activity extracted",
			slog.String("url", rawURL),
			slog.String("family_id", family.String()),
			slog.String("error", err.Error()))
		return nil, nil
	}
	if page == nil || strings.TrimSpace(page.Title) == "" {
		s.log.WarnContext(ctx, "no activity extracted",
			slog.String("url", rawURL),
			slog.String("reason", "page has no title"))
		return nil, nil
	}

	input := SaveActivityInput{
		Title:       page.Title,
		Description: optional(page.Description),
		PhotoRef:    optional(page.ImageURL),
		SourceURL:   rawURL,
		SourceKind:  domain.SourceKindURL,
	}
	input.Title = truncate(strings.TrimSpace(input.Title), maxTitleBytes)

	id, err := s.SaveActivity(ctx, input, family.String())
	if err != nil {
		return nil, err
	}

	a := input.toActivity(family, time.Now())
	a.ID = id
	return &a, nil
}

const maxTitleBytes = 300

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
