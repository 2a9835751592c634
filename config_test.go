package chanmix

import (
	"os"
	"testing"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BackgroundTracks != 2 || cfg.Easing != InOutSine || cfg.Debug {
		t.Errorf("DefaultConfig = %+v", cfg)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, "CHANMIX_BACKGROUND_TRACKS")
	unsetEnv(t, "CHANMIX_EASING")
	unsetEnv(t, "CHANMIX_DEBUG")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("CHANMIX_BACKGROUND_TRACKS", "5")
	t.Setenv("CHANMIX_EASING", "outBounce")
	t.Setenv("CHANMIX_DEBUG", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	want := Config{BackgroundTracks: 5, Easing: OutBounce, Debug: true}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"tracks not a number", "CHANMIX_BACKGROUND_TRACKS", "many"},
		{"negative tracks", "CHANMIX_BACKGROUND_TRACKS", "-1"},
		{"unknown easing", "CHANMIX_EASING", "wobble"},
		{"debug not a bool", "CHANMIX_DEBUG", "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := ConfigFromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
