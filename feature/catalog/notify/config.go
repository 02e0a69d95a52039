package notify

import "time"

// Config holds configuration for downstream notifications.
type Config struct {
	// WebhookURL enables the HTTP notifier when set.
	WebhookURL string `mapstructure:"webhook_url" default:""`
	// Timeout bounds a single webhook call.
	Timeout time.Duration `mapstructure:"timeout" default:"10s"`
}
