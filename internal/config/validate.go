package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
)

// MaxFetchTimeout bounds activities.fetch_timeout.
const MaxFetchTimeout = 60 * time.Second

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if err := c.Calendar.validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if err := c.Activities.validate(); err != nil {
		return fmt.Errorf("activities: %w", err)
	}
	if err := c.Digest.validate(); err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

func (c *CalendarConfig) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}

func (a *ActivitiesConfig) validate() error {
	if a.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0 (got %d)", a.Capacity)
	}
	if a.FetchTimeout <= 0 || a.FetchTimeout > MaxFetchTimeout {
		return fmt.Errorf("fetch_timeout must be in (0, %v] (got %v)", MaxFetchTimeout, a.FetchTimeout)
	}
	if a.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", a.RetentionDays)
	}
	if a.IngestPerMinute < 0 {
		return fmt.Errorf("ingest_per_minute must be >= 0 (got %d)", a.IngestPerMinute)
	}
	return nil
}

func (d *DigestConfig) validate() error {
	if !d.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(d.Cron); err != nil {
		return fmt.Errorf("cron %q: %w", d.Cron, err)
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", d.Timeout)
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if n.WebhookURL == "" {
		return nil
	}
	u, err := url.Parse(n.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("webhook_url %q must be an http(s) URL", n.WebhookURL)
	}
	if n.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", n.Timeout)
	}
	return nil
}
