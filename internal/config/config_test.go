package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.API.MapSampleCap != 20000 {
		t.Errorf("expected default map sample cap 20000, got %d", cfg.API.MapSampleCap)
	}
	if cfg.API.TopWeatherLimit != 5 {
		t.Errorf("expected default top weather limit 5, got %d", cfg.API.TopWeatherLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_PATH", "/tmp/accidents.csv")
	t.Setenv("MAP_SAMPLE_CAP", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Data.Path != "/tmp/accidents.csv" {
		t.Errorf("expected overridden data path, got %s", cfg.Data.Path)
	}
	if cfg.API.MapSampleCap != 500 {
		t.Errorf("expected map sample cap 500, got %d", cfg.API.MapSampleCap)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "99999"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0"},
		{"zero sample cap", "MAP_SAMPLE_CAP", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
