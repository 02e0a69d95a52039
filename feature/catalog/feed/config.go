package feed

import "time"

// Config holds configuration for the feed client.
type Config struct {
	// URL is the address of the feed. Required.
	URL string `mapstructure:"url" default:""`
	// Timeout bounds a single fetch.
	Timeout time.Duration `mapstructure:"timeout" default:"60s"`
}
