package happyeyeballs

import "testing"

func TestDefaultConfig_Values(t *testing.T) {
	cfg := defaultConfig()
	if cfg.StaggerDelay.Milliseconds() != 200 {
		t.Fatalf("StaggerDelay default = %v; want 200ms", cfg.StaggerDelay)
	}
	if cfg.MaxAttempts != 6 {
		t.Fatalf("MaxAttempts default = %d; want 6", cfg.MaxAttempts)
	}
	if cfg.Timeout.Seconds() != 25 {
		t.Fatalf("Timeout default = %v; want 25s", cfg.Timeout)
	}
	if cfg.Metrics == nil {
		t.Fatalf("Metrics default is nil")
	}
}

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := defaultConfig()
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("validateConfig returned error for defaults: %v", err)
	}
}

func TestValidateConfig_RejectsNonPositive(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"StaggerDelay", func(c *Config) { c.StaggerDelay = 0 }},
		{"MaxAttempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"Timeout", func(c *Config) { c.Timeout = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mut(&cfg)
			if err := validateConfig(&cfg); err == nil {
				t.Fatalf("validateConfig accepted invalid %s", tc.name)
			}
		})
	}
}
