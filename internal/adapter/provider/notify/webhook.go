// Package notify delivers partner messages: a JSON webhook for the chat bot,
// or the log when no webhook is configured.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// message is the webhook payload.
type message struct {
	RecipientID int64  `json:"recipient_id"`
	Text        string `json:"text"`
}

// errorResponse is the optional error body returned by the bot.
type errorResponse struct {
	Error string `json:"error"`
}

// Webhook posts messages to the chat bot integration.
type Webhook struct {
	url        string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWebhook creates a webhook notifier. token, when set, is sent as a
// bearer Authorization header.
func NewWebhook(url, token string, timeout time.Duration, logger *slog.Logger) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Webhook{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "webhook_notifier"),
	}
}

// Notify delivers text to the user with the given external id.
func (w *Webhook) Notify(ctx context.Context, recipientID int64, text string) error {
	payload, err := json.Marshal(message{RecipientID: recipientID, Text: text})
	if err != nil {
		return fmt.Errorf("notify: encode: %w", err)
	}

	resp, err := w.doWithRetry(ctx, payload)
	if err != nil {
		w.log.ErrorContext(ctx, "webhook delivery failed",
			slog.Int64("recipient_id", recipientID),
			slog.String("error", err.Error()))
		return fmt.Errorf("notify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("notify: status %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("notify: unexpected status %d", resp.StatusCode)
	}

	w.log.DebugContext(ctx, "webhook delivered",
		slog.Int64("recipient_id", recipientID),
		slog.Int("status", resp.StatusCode))
	return nil
}

func (w *Webhook) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (w *Webhook) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := w.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	resp, err := w.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	w.log.WarnContext(ctx, "webhook retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(300 * time.Millisecond):
	}

	req, err = w.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	return w.httpClient.Do(req)
}
