//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/family-planner/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/family-planner/internal/app"
	authpkg "github.com/heartmarshall/family-planner/internal/auth"
	"github.com/heartmarshall/family-planner/internal/config"
	"github.com/heartmarshall/family-planner/internal/transport/middleware"
	"github.com/heartmarshall/family-planner/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Inbox  *webhookInbox
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// webhookInbox collects the partner messages posted to the notify webhook.
type webhookInbox struct {
	mu       sync.Mutex
	messages []webhookMessage
}

type webhookMessage struct {
	RecipientID int64  `json:"recipient_id"`
	Text        string `json:"text"`
}

func (in *webhookInbox) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var m webhookMessage
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	in.mu.Lock()
	in.messages = append(in.messages, m)
	in.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (in *webhookInbox) For(recipientID int64) []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	var out []string
	for _, m := range in.messages {
		if m.RecipientID == recipientID {
			out = append(out, m.Text)
		}
	}
	return out
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and a local notify webhook.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	inbox := &webhookInbox{}
	hook := httptest.NewServer(inbox)
	t.Cleanup(hook.Close)

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
		},
		Calendar:   config.CalendarConfig{Timezone: "Europe/Moscow", Location: loc},
		Activities: config.ActivitiesConfig{Capacity: 5, FetchTimeout: 5 * time.Second, RetentionDays: 30},
		Notify:     config.NotifyConfig{WebhookURL: hook.URL, Timeout: 2 * time.Second},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	svc := app.NewServices(cfg, pool, logger)
	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, nil, "e2e"),
		Users:      rest.NewUserHandler(svc.Users, logger),
		Events:     rest.NewEventHandler(svc.Calendar, logger, loc),
		Activities: rest.NewActivityHandler(svc.Activities, svc.Users, logger, loc),
	}, middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtMgr),
		middleware.Logger(logger),
	), limiter.Limit(100))

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Inbox:  inbox,
		jwt:    jwtMgr,
	}
}

// tokenFor issues a bearer token for the given external id.
func (ts *testServer) tokenFor(t *testing.T, externalID int64) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(externalID, "e2e")
	require.NoError(t, err)
	return token
}

// restRequest sends a JSON request and returns the raw response.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// restJSON sends a request, asserts the status and decodes the body into out.
func restJSON(t *testing.T, ts *testServer, method, path, token string, body any, wantStatus int, out any) {
	t.Helper()

	resp := restRequest(t, ts, method, path, token, body)
	defer resp.Body.Close()

	require.Equal(t, wantStatus, resp.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

// nextMonday returns 10:00 local time on the Monday after now.
func nextMonday(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	days := (8 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, loc)
}

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}
