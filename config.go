package chanmix

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the per-animator settings.
type Config struct {
	// BackgroundTracks is the number of background slots a channel starts
	// with. Channels grow past it on demand when fades overlap.
	BackgroundTracks int `env:"CHANMIX_BACKGROUND_TRACKS" envDefault:"2"`

	// Easing is the curve used when a Play or Stop call names none.
	Easing Easing `env:"CHANMIX_EASING" envDefault:"inOutSine"`

	// Debug enables layout assertions that panic on invariant violations.
	Debug bool `env:"CHANMIX_DEBUG"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BackgroundTracks: 2,
		Easing:           DefaultEasing,
	}
}

// ConfigFromEnv loads a Config from CHANMIX_* environment variables, falling
// back to the defaults for unset ones.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BackgroundTracks < 0 {
		return Config{}, fmt.Errorf("parse env: CHANMIX_BACKGROUND_TRACKS must not be negative, got %d", cfg.BackgroundTracks)
	}
	return cfg, nil
}
