package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CARPOOL_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Fare.BaseFare != 30 || cfg.Fare.RatePerKm != 8 {
		t.Errorf("fare = %d + %d/km, want 30 + 8/km", cfg.Fare.BaseFare, cfg.Fare.RatePerKm)
	}
	if cfg.Fare.RiderShare != 0.6 {
		t.Errorf("RiderShare = %v, want 0.6", cfg.Fare.RiderShare)
	}
	if cfg.Fare.FallbackDistanceKm != 12 {
		t.Errorf("FallbackDistanceKm = %v, want 12", cfg.Fare.FallbackDistanceKm)
	}
	if cfg.Auth.TokenTTL != 72*time.Hour {
		t.Errorf("TokenTTL = %v, want 72h", cfg.Auth.TokenTTL)
	}
	if cfg.Grouping.Normalize {
		t.Error("grouping normalization must be off by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARPOOL_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("CARPOOL_HTTP_ADDR", ":9090")
	t.Setenv("CARPOOL_FARE_BASE_FARE", "40")
	t.Setenv("CARPOOL_GROUPING_NORMALIZE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Fare.BaseFare != 40 {
		t.Errorf("BaseFare = %d, want 40", cfg.Fare.BaseFare)
	}
	if !cfg.Grouping.Normalize {
		t.Error("expected grouping normalization enabled")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.Auth.JWTSecret = "s"
		c.Fare = FareConfig{BaseFare: 30, RatePerKm: 8, RiderShare: 0.6, FallbackDistanceKm: 12}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no auth", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"firebase only", func(c *Config) { c.Auth.JWTSecret = ""; c.Auth.FirebaseProjectID = "p" }, false},
		{"jwt and firebase together", func(c *Config) { c.Auth.FirebaseProjectID = "p" }, false},
		{"zero share", func(c *Config) { c.Fare.RiderShare = 0 }, true},
		{"share above one", func(c *Config) { c.Fare.RiderShare = 1.2 }, true},
		{"zero fallback distance", func(c *Config) { c.Fare.FallbackDistanceKm = 0 }, true},
		{"negative rate", func(c *Config) { c.Fare.RatePerKm = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
