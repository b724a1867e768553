// Package notify delivers operator-facing messages about ledger changes.
// Delivery is best-effort by contract: callers log a failed Notify and move
// on, and a notification failure never fails the write that triggered it.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Notifier is the outbound notification boundary.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Nop discards every message. Used when no webhook is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

// Webhook posts messages as a form body to a bearer-token endpoint, the
// shape LINE Notify style relays expect.
type Webhook struct {
	url    string
	token  string
	client *http.Client
}

// NewWebhook returns a Webhook bound to an endpoint. token may be empty
// for endpoints that do their own network-level auth.
func NewWebhook(endpoint, token string) *Webhook {
	return &Webhook{
		url:    endpoint,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Notify(ctx context.Context, message string) error {
	form := url.Values{"message": {message}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
