// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// TierScheme selects the percentage-to-tier boundary scheme.
	// Two incompatible schemes exist in the assessment's history; the
	// active one is an explicit configuration choice.
	TierScheme string `koanf:"tier_scheme" validate:"oneof=legacy revised"`

	// MaxPeerRaters caps distinct peer raters per ratee at submission time.
	MaxPeerRaters int `koanf:"max_peer_raters" validate:"min=1"`

	// MaxManagerRaters caps distinct manager raters per ratee at submission time.
	MaxManagerRaters int `koanf:"max_manager_raters" validate:"min=1"`

	// ShardCount configures the number of shards in the rating store.
	ShardCount int `koanf:"shard_count" validate:"min=1"`

	// NotifyQueueSize bounds the in-memory confirmation queue.
	NotifyQueueSize int `koanf:"notify_queue_size" validate:"min=1"`

	// NotifyWorkerCount sets the number of notification dispatch workers.
	NotifyWorkerCount int `koanf:"notify_worker_count" validate:"min=1"`

	// SMTP settings for the confirmation notifier. Credentials are always
	// injected here, never embedded in code. An empty host disables
	// notifications entirely.
	SMTPHost     string `koanf:"smtp_host"`
	SMTPPort     int    `koanf:"smtp_port"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`
	SMTPFrom     string `koanf:"smtp_from"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		TierScheme:        "revised",
		MaxPeerRaters:     2,
		MaxManagerRaters:  2,
		ShardCount:        8,
		NotifyQueueSize:   1024,
		NotifyWorkerCount: 2,
		SMTPPort:          587,
		SMTPFrom:          "no-reply@fullcircle.local",
	}
}
