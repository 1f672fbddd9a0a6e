package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SYNERGY_RULES_FILE", "")
	t.Setenv("MAX_ITEMS", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.MaxItems != defaultMaxItems {
		t.Fatalf("expected default max items %d, got %d", defaultMaxItems, cfg.MaxItems)
	}
	if cfg.RulesFile != "" {
		t.Fatalf("expected no rules file by default, got %s", cfg.RulesFile)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SYNERGY_RULES_FILE", "/etc/loadout/rules.yaml")
	t.Setenv("MAX_ITEMS", "32")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.RulesFile != "/etc/loadout/rules.yaml" {
		t.Fatalf("unexpected rules file: %s", cfg.RulesFile)
	}
	if cfg.MaxItems != 32 {
		t.Fatalf("expected max items 32, got %d", cfg.MaxItems)
	}
	if cfg.RateLimitRPS != 5 {
		t.Fatalf("expected rate limit 5, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 10 {
		t.Fatalf("expected burst 10, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_ITEMS", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: "8181"
rules_file: rules.yaml
max_items: 48
shutdown_grace_period: 2s
enable_request_logging: true
rate_limit:
  rps: 7
  burst: 14
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8181" {
		t.Fatalf("expected port 8181, got %s", cfg.Port)
	}
	if cfg.RulesFile != "rules.yaml" {
		t.Fatalf("unexpected rules file: %s", cfg.RulesFile)
	}
	if cfg.MaxItems != 48 {
		t.Fatalf("expected max items 48, got %d", cfg.MaxItems)
	}
	if cfg.ShutdownGracePeriod != 2*time.Second {
		t.Fatalf("unexpected grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.RateLimitRPS != 7 || cfg.RateLimitBurst != 14 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestCLIOverridesWinOverEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_ITEMS", "32")

	port := "7070"
	maxItems := 16
	cfg, err := Load(&CLIOverrides{Port: &port, MaxItems: &maxItems})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.MaxItems != 16 {
		t.Fatalf("expected CLI max items to win, got %d", cfg.MaxItems)
	}
}

func TestLoadRejectsInvalidMaxItems(t *testing.T) {
	t.Setenv("MAX_ITEMS", "")

	tooLarge := maxItemsCeiling + 1
	if _, err := Load(&CLIOverrides{MaxItems: &tooLarge}); err == nil {
		t.Fatalf("expected error for max items above ceiling")
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
