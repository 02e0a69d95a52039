package config

import (
	"fmt"
	"net/url"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/money"
)

// Validate checks the options nothing can start without.
// It returns a *ConfigurationError listing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Feed.URL == "" {
		problems = append(problems, "feed.url is required")
	} else if u, err := url.Parse(c.Feed.URL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("feed.url %q is not an absolute URL", c.Feed.URL))
	}

	if c.Schedule.IntervalDays <= 0 {
		problems = append(problems, "schedule.interval_days must be greater than zero")
	}
	if c.Schedule.Retries < 0 {
		problems = append(problems, "schedule.retries must not be negative")
	}
	if c.Schedule.RetryBackoff < 0 {
		problems = append(problems, "schedule.retry_backoff must not be negative")
	}
	if c.Schedule.StartupDelay < 0 {
		problems = append(problems, "schedule.startup_delay must not be negative")
	}

	if _, err := money.ByName(c.Catalog.Rounding); err != nil {
		problems = append(problems, fmt.Sprintf("catalog.rounding: %v", err))
	}

	switch strings.ToLower(c.Database.Driver) {
	case "", database.DriverMySQL, database.DriverSQLite:
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	if c.Storage.Enabled && c.Storage.Bucket == "" {
		problems = append(problems, "storage.bucket is required when storage is enabled")
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}
