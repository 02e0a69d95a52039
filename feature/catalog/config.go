package catalog

import (
	"time"
)

// Config holds configuration for catalog reconciliation.
type Config struct {
	// StopOnError aborts a run at the first failed item.
	StopOnError bool `mapstructure:"stop_on_error" default:"false"`
	// Rounding selects the money rounding strategy: half_up or bankers.
	Rounding string `mapstructure:"rounding" default:"half_up"`
	// ReportPrefix is the object key prefix of archived run reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// Language is used for seeding the default channel of an empty catalog.
	Language string `mapstructure:"language" default:"en"`
	// Currency is used for seeding the default channel of an empty catalog.
	Currency string `mapstructure:"currency" default:"USD"`
	// LockTTL bounds how long a crashed run can hold the run lock.
	LockTTL time.Duration `mapstructure:"lock_ttl" default:"2h"`
}

// ScheduleConfig holds configuration for scheduled runs.
type ScheduleConfig struct {
	// IntervalDays is the number of days between runs. Required.
	IntervalDays int `mapstructure:"interval_days" default:""`
	// Worker enables the one-shot run after StartupDelay.
	Worker bool `mapstructure:"worker" default:"false"`
	// StartupDelay is the wait before the worker's startup run.
	StartupDelay time.Duration `mapstructure:"startup_delay" default:"120s"`
	// Retries is how many more times a failed scheduled run is attempted.
	Retries int `mapstructure:"retries" default:"2"`
	// RetryBackoff is the wait before the first retry. It doubles on every further retry.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" default:"30s"`
}

// Interval returns the time between scheduled runs.
func (c ScheduleConfig) Interval() time.Duration {
	return time.Duration(c.IntervalDays) * 24 * time.Hour
}
