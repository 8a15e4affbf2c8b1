// Package opengraph fetches web pages and extracts their OpenGraph preview
// (title, description, image).
package opengraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/heartmarshall/family-planner/internal/domain"
	"github.com/heartmarshall/family-planner/internal/provider"
)

// maxBodyBytes bounds how much of a page is parsed.
const maxBodyBytes = 2 << 20

// Provider fetches pages over HTTP.
type Provider struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
}

// NewProvider creates a Provider whose requests are bounded by timeout.
func NewProvider(timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Provider{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "family-planner/1.0 (+link preview)",
		log:        logger.With("adapter", "opengraph"),
	}
}

// FetchPage downloads rawURL and extracts its preview metadata.
// Returns domain.ErrFetchTimeout when the request exceeds its deadline.
func (p *Provider) FetchPage(ctx context.Context, rawURL string) (*provider.PageResult, error) {
	p.log.DebugContext(ctx, "opengraph request", slog.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("opengraph: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("opengraph: %s: %w", rawURL, domain.ErrFetchTimeout)
		}
		return nil, fmt.Errorf("opengraph: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opengraph: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("opengraph: unsupported content type %q", ct)
	}

	result, err := parsePage(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("opengraph: %s: %w", rawURL, domain.ErrFetchTimeout)
		}
		return nil, fmt.Errorf("opengraph: parse: %w", err)
	}
	result.URL = rawURL
	result.ImageURL = resolve(resp.Request.URL, result.ImageURL)

	p.log.DebugContext(ctx, "opengraph response",
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Bool("has_title", result.Title != ""),
		slog.Bool("has_image", result.ImageURL != ""))

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil || isTimeout(ctx, err) {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "opengraph retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}

	return p.httpClient.Do(req)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// parsePage walks the document and collects og:* meta tags, falling back to
// <title> and the description meta tag.
func parsePage(r io.Reader) (*provider.PageResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var (
		result   provider.PageResult
		titleTag string
		descTag  string
		walk     func(n *html.Node)
	)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if titleTag == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					titleTag = n.FirstChild.Data
				}
			case "meta":
				key, content := metaPair(n)
				switch key {
				case "og:title":
					result.Title = content
				case "og:description":
					result.Description = content
				case "og:image", "og:image:url":
					if result.ImageURL == "" {
						result.ImageURL = content
					}
				case "og:site_name":
					result.SiteName = content
				case "description":
					descTag = content
				}
			case "body":
				// Preview tags live in <head>.
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if result.Title == "" {
		result.Title = titleTag
	}
	if result.Description == "" {
		result.Description = descTag
	}
	result.Title = collapse(result.Title)
	result.Description = collapse(result.Description)
	result.ImageURL = strings.TrimSpace(result.ImageURL)
	return &result, nil
}

// metaPair returns the lowercased property/name and the content of a meta tag.
func metaPair(n *html.Node) (key, content string) {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "property", "name":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = a.Val
		}
	}
	return key, content
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolve makes a relative image reference absolute against the page URL.
func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
