package constants

import "time"

// Timeout constants used throughout the application
const (
	// DefaultSourceTimeout bounds the time a single source may take to be read
	DefaultSourceTimeout = 60 * time.Second

	// SSHDialTimeout is the timeout for SSH dial operations
	SSHDialTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is how long idle HTTP connections are kept around
	HTTPIdleConnTimeout = 30 * time.Second

	// LoggerFlushTimeout bounds how long the logger drains on shutdown
	LoggerFlushTimeout = 2 * time.Second

	// StatsTimerDuration is the interval of the periodic progress stats
	StatsTimerDuration = 3 * time.Second

	// StatsPauseDuration is how long log output pauses while stats are shown
	StatsPauseDuration = 1 * time.Second
)
