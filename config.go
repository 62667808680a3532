package paramhash

import "errors"

// Config defines a public type used by paramhash APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// PreferredScheme names the registered scheme new hashes are written
	// under. Records under any other registered scheme still verify; with
	// RehashOnLogin they are transparently migrated.
	PreferredScheme string

	// RehashOnLogin rewrites a record under the preferred scheme and its
	// current parameters after a successful verification against stale
	// ones. The rewrite is best-effort: a failed rewrite never fails the
	// login that triggered it.
	RehashOnLogin bool

	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by paramhash APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by paramhash APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		RehashOnLogin: true,
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.PreferredScheme == "" {
		return errors.New("preferred scheme must be set")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must be >= 0")
	}
	return nil
}
