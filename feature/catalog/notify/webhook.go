package notify

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Payload is the JSON body posted by Webhook.
type Payload struct {
	Event      string    `json:"event"`
	VariantIDs []uint    `json:"variant_ids,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}

// Webhook posts notifications to an HTTP endpoint.
type Webhook struct {
	url  string
	http *resty.Client
}

// NewWebhook creates a webhook notifier.
func NewWebhook(cfg Config) *Webhook {
	http := resty.New().
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	return &Webhook{url: cfg.WebhookURL, http: http}
}

func (w *Webhook) Reindex(ctx context.Context) error {
	return w.post(ctx, Payload{Event: EventReindex})
}

func (w *Webhook) VariantsChanged(ctx context.Context, variantIDs []uint) error {
	if variantIDs == nil {
		variantIDs = []uint{}
	}
	return w.post(ctx, Payload{Event: EventVariantsChanged, VariantIDs: variantIDs})
}

func (w *Webhook) post(ctx context.Context, p Payload) error {
	p.SentAt = time.Now().UTC()

	resp, err := w.http.R().
		SetContext(ctx).
		SetBody(p).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("failed to send %s notification: %w", p.Event, err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to send %s notification: status %d: %s", p.Event, resp.StatusCode(), resp.String())
	}
	return nil
}

// Close releases the underlying HTTP resources.
func (w *Webhook) Close() error {
	return w.http.Close()
}
