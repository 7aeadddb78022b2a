package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Max    int    `env:"DICE_TEST_MAX" envDefault:"10000"`
	Format string `env:"DICE_TEST_FORMAT" envDefault:"text"`
	Seed   int64  `env:"DICE_TEST_SEED"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Max != 10000 {
		t.Fatalf("expected default max 10000, got %d", cfg.Max)
	}
	if cfg.Format != "text" {
		t.Fatalf("expected default format text, got %q", cfg.Format)
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected zero seed, got %d", cfg.Seed)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DICE_TEST_SEED", "7")
	t.Setenv("DICE_TEST_FORMAT", "yaml")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Seed != 7 || cfg.Format != "yaml" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DICE_TEST_MAX", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
