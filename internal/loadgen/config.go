// Package loadgen generates synthetic assessment submissions and drives
// them against a running service. It exists for manual load testing and for
// seeding demo data.
package loadgen

import "time"

// Default driver configuration constants.
const (
	defaultBaseURL          = "http://localhost:9080"
	defaultRatees           = 100
	defaultPeersPerRatee    = 2
	defaultManagersPerRatee = 0
	defaultConcurrency      = 16
	defaultRequestTimeout   = 10 * time.Second
)

// Config controls one driver run.
type Config struct {
	BaseURL          string
	Ratees           int
	PeersPerRatee    int
	ManagersPerRatee int
	Concurrency      int
	RequestTimeout   time.Duration
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:          defaultBaseURL,
		Ratees:           defaultRatees,
		PeersPerRatee:    defaultPeersPerRatee,
		ManagersPerRatee: defaultManagersPerRatee,
		Concurrency:      defaultConcurrency,
		RequestTimeout:   defaultRequestTimeout,
	}
}
