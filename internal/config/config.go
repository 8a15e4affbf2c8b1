package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Activities ActivitiesConfig `yaml:"activities"`
	Digest     DigestConfig     `yaml:"digest"`
	Notify     NotifyConfig     `yaml:"notify"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins splits AllowedOrigins into trimmed, non-empty values.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods splits AllowedMethods into trimmed, non-empty values.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers splits AllowedHeaders into trimmed, non-empty values.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"family-planner"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"8760h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CalendarConfig holds scheduling settings.
type CalendarConfig struct {
	// Timezone is the IANA zone used for local days, agendas and message texts.
	Timezone string `yaml:"timezone" env:"CALENDAR_TIMEZONE" env-default:"Europe/Moscow"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// ActivitiesConfig holds activity cache settings.
type ActivitiesConfig struct {
	Capacity      int           `yaml:"capacity"       env:"ACTIVITIES_CAPACITY"       env-default:"100"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"  env:"ACTIVITIES_FETCH_TIMEOUT"  env-default:"20s"`
	RetentionDays int           `yaml:"retention_days" env:"ACTIVITIES_RETENTION_DAYS" env-default:"30"`
	// IngestPerMinute caps link ingestion per user; 0 disables the limit.
	IngestPerMinute int `yaml:"ingest_per_minute" env:"ACTIVITIES_INGEST_PER_MINUTE" env-default:"20"`
}

// DigestConfig holds daily digest settings.
type DigestConfig struct {
	Enabled bool          `yaml:"enabled" env:"DIGEST_ENABLED" env-default:"true"`
	Cron    string        `yaml:"cron"    env:"DIGEST_CRON"    env-default:"* * * * *"`
	Timeout time.Duration `yaml:"timeout" env:"DIGEST_TIMEOUT" env-default:"50s"`
}

// NotifyConfig holds partner notification settings. An empty WebhookURL
// switches to log-only delivery.
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"NOTIFY_WEBHOOK_URL"`
	Token      string        `yaml:"token"       env:"NOTIFY_TOKEN"`
	Timeout    time.Duration `yaml:"timeout"     env:"NOTIFY_TIMEOUT"     env-default:"5s"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
