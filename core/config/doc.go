// Package config provides configuration management for catalog-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every partial
// configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key)
//   - Database: catalog database driver and connection details
//   - Storage: S3/MinIO credentials and bucket for run reports
//   - Redis: cross-process run lock
//   - Log: Logging level and format
//   - Feed: product feed URL and timeout
//   - Schedule: run interval and worker startup run
//   - Catalog: engine options (stop on error, rounding, report prefix)
//   - Notify: downstream webhook
//
// Environment variables map to nested keys by replacing dots with underscores,
// e.g. FEED_URL sets feed.url and SCHEDULE_INTERVAL_DAYS sets schedule.interval_days.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err) // errors.Is(err, config.ErrConfiguration)
//	}
package config
