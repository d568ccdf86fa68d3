package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/novawardrobe/concierge/internal/model/lead"
)

// Forwarder delivers a freshly created record to an external destination.
type Forwarder interface {
	Forward(ctx context.Context, record lead.Record) error
}

// WebhookForwarder POSTs records as JSON to a configured URL. Delivery is
// best-effort: the caller logs failures and never retries.
type WebhookForwarder struct {
	url    string
	client *http.Client
}

// NewWebhookForwarder builds a forwarder with a bounded request timeout so
// a slow destination cannot pin goroutines.
func NewWebhookForwarder(url string, timeout time.Duration) *WebhookForwarder {
	return &WebhookForwarder{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Forward POSTs the record. The response body is discarded.
func (f *WebhookForwarder) Forward(ctx context.Context, record lead.Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NopForwarder is used when no webhook destination is configured.
type NopForwarder struct{}

// Forward does nothing.
func (NopForwarder) Forward(context.Context, lead.Record) error { return nil }
