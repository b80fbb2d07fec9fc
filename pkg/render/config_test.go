package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/willbeason/buddhabrot/pkg/plane"
)

func validConfig() Config {
	return Config{Size: 16, Iterations: 50, Workers: 1, MaxSamples: 8}
}

func TestConfig_Validate(t *testing.T) {
	tcs := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "zero size", modify: func(c *Config) { c.Size = 0 }, wantErr: "size"},
		{name: "negative iterations", modify: func(c *Config) { c.Iterations = -1 }, wantErr: "iterations"},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: "workers"},
		{name: "zero samples", modify: func(c *Config) { c.MaxSamples = 0 }, wantErr: "max samples"},
		{name: "negative radius", modify: func(c *Config) { c.EscapeRadius2 = -8 }, wantErr: "escape radius"},
		{name: "infinite radius", modify: func(c *Config) { c.EscapeRadius2 = math.Inf(1) }, wantErr: "escape radius"},
		{name: "nan radius", modify: func(c *Config) { c.EscapeRadius2 = math.NaN() }, wantErr: "escape radius"},
		{name: "window size mismatch", modify: func(c *Config) { c.Window = plane.Default(8) }, wantErr: "window is 8 pixels"},
		{name: "asymmetric mirror", modify: func(c *Config) {
			c.Mirror = true
			c.Window = plane.Window{Bounds: plane.Bounds{ULo: -2, UHi: 2, VLo: 0, VHi: 2}, Size: 16}
		}, wantErr: "symmetric"},
		{name: "default window mirrors", modify: func(c *Config) { c.Mirror = true }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	err := Config{}.Validate()
	for _, field := range []string{"size", "iterations", "workers", "max samples"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() = %q, want it to mention %q", err, field)
		}
	}
}

func TestEntropySeed(t *testing.T) {
	// Two draws colliding would need a 64-bit entropy collision.
	if EntropySeed(0) == EntropySeed(0) {
		t.Error("EntropySeed returned the same seed twice")
	}
}
