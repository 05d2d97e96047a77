package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/eugenenazirov/bouquets/internal/output"
	"github.com/eugenenazirov/bouquets/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OUTPUT_PATH", "LOG_LEVEL", "PORT", "DESIGNS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OutputPath != output.DefaultPath {
		t.Fatalf("expected default output path %s, got %s", output.DefaultPath, cfg.OutputPath)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected default log level %s, got %s", defaultLogLevel, cfg.LogLevel)
	}
	if !slices.Equal(cfg.InitialDesigns, storage.DefaultDesigns()) {
		t.Fatalf("expected default designs, got %v", cfg.InitialDesigns)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("OUTPUT_PATH", "/tmp/bouquets.txt")
	t.Setenv("DESIGNS", "AL1a1, BS2 ")
	t.Setenv("RATE_LIMIT_RPS", "3.5")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.OutputPath != "/tmp/bouquets.txt" {
		t.Fatalf("expected overridden output path, got %s", cfg.OutputPath)
	}
	if want := []string{"AL1a1", "BS2"}; !slices.Equal(cfg.InitialDesigns, want) {
		t.Fatalf("unexpected designs: %v", cfg.InitialDesigns)
	}
	if cfg.RateLimitRPS != 3.5 {
		t.Fatalf("expected rps 3.5, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidEnvDesignsKeepsDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESIGNS", "AL1a")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !slices.Equal(cfg.InitialDesigns, storage.DefaultDesigns()) {
		t.Fatalf("expected defaults after invalid env designs, got %v", cfg.InitialDesigns)
	}
}

func TestLoadYAMLAndCLIPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: "7100"
output_path: results.txt
log_level: debug
designs:
  - AL10a15b25
  - AS2
shutdown_grace_period: 3s
enable_request_logging: false
rate_limit:
  rps: 0
  burst: 4
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	port := "7200"
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Port: &port})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected YAML log level over env, got %s", cfg.LogLevel)
	}
	if cfg.OutputPath != "results.txt" {
		t.Fatalf("expected YAML output path, got %s", cfg.OutputPath)
	}
	if want := []string{"AL10a15b25", "AS2"}; !slices.Equal(cfg.InitialDesigns, want) {
		t.Fatalf("unexpected designs: %v", cfg.InitialDesigns)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging disabled by YAML")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("write_timeout: soon\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for invalid duration")
		}
	})

	t.Run("bad YAML designs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("designs: [AL1a]\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for malformed design")
		}
	})

	t.Run("bad CLI designs", func(t *testing.T) {
		designs := "AL1a1,XX"
		if _, err := Load(&CLIOverrides{DesignsStr: &designs}); err == nil {
			t.Fatalf("expected error for malformed CLI design")
		}
	})
}

func TestParseDesigns(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := parseDesigns("AL10a15b25, BS2a0b2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"AL10a15b25", "BS2a0b2"}; !slices.Equal(got, want) {
			t.Fatalf("unexpected designs: %v", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := parseDesigns(" , "); err == nil {
			t.Fatalf("expected error for empty string")
		}
		if _, err := parseDesigns("AL1a1,AL"); err == nil {
			t.Fatalf("expected error for malformed design")
		}
	})
}
