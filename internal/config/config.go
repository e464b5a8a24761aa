// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer defaults, optional YAML file, then PISTE_ environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Default engine settings.
const (
	defaultMinPouleSize = 5
	defaultMaxPouleSize = 7
	defaultStoreHint    = 16
	defaultDemoAthletes = 20
	defaultDemoClubs    = 6
	defaultDemoSeed     = 1
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MinPouleSize and MaxPouleSize bound the optimal sizing policy when a
	// phase does not state its own.
	MinPouleSize int `koanf:"min_poule_size"`
	MaxPouleSize int `koanf:"max_poule_size"`

	// StrictSeparation makes generation fail instead of forcing placements
	// that break separation rules.
	StrictSeparation bool `koanf:"strict_separation"`

	// StoreCapacityHint pre-sizes the in-memory tournament store.
	StoreCapacityHint int `koanf:"store_capacity_hint"`

	// Demo roster parameters used by the command-line driver.
	DemoAthletes int   `koanf:"demo_athletes"`
	DemoClubs    int   `koanf:"demo_clubs"`
	DemoSeed     int64 `koanf:"demo_seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		MinPouleSize:      defaultMinPouleSize,
		MaxPouleSize:      defaultMaxPouleSize,
		StrictSeparation:  false,
		StoreCapacityHint: defaultStoreHint,
		DemoAthletes:      defaultDemoAthletes,
		DemoClubs:         defaultDemoClubs,
		DemoSeed:          defaultDemoSeed,
	}
}
