// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Fields are exported and tagged for koanf.
// - New() builds a Config with defaults.
// - Validation failures wrap this package's sentinel errors.
//
// Model constants (component weights, the sigmoid slope, home-field
// advantage) are fixed design parameters and deliberately absent here.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SnapshotPath points at the sqlite snapshot file loaded at boot.
	// Empty means the process starts without a snapshot and waits for
	// one to be installed.
	SnapshotPath string `koanf:"snapshot_path"`

	// WorkerCount sets the number of batch prediction workers.
	WorkerCount int `koanf:"worker_count"`

	// BatchQueueSize must be positive. It is validated only; the batch
	// matchup queue is sized to each request's matchup count.
	BatchQueueSize int `koanf:"batch_queue_size"`

	// MaxBatchSize caps the matchups accepted in one batch request.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9090",
		SnapshotPath:   "",
		WorkerCount:    runtime.NumCPU(),
		BatchQueueSize: 1024,
		MaxBatchSize:   64,
	}
}
