package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := LoadConfig()
	if cfg.Gemini.Model != "gemini-2.0-flash-001" {
		t.Fatalf("unexpected default model: %s", cfg.Gemini.Model)
	}
	if cfg.Gemini.RetryBudget != 3 {
		t.Fatalf("unexpected default retry budget: %d", cfg.Gemini.RetryBudget)
	}
	if cfg.Pipeline.ConfidenceThreshold != 0.8 {
		t.Fatalf("unexpected default confidence threshold: %v", cfg.Pipeline.ConfidenceThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.9")
	t.Setenv("GEMINI_RETRY_BUDGET", "5")

	cfg := LoadConfig()
	if cfg.Gemini.Model != "gemini-test" {
		t.Fatalf("model override not applied: %s", cfg.Gemini.Model)
	}
	if cfg.Pipeline.ConfidenceThreshold != 0.9 {
		t.Fatalf("threshold override not applied: %v", cfg.Pipeline.ConfidenceThreshold)
	}
	if cfg.Gemini.RetryBudget != 5 {
		t.Fatalf("retry budget override not applied: %d", cfg.Gemini.RetryBudget)
	}
}

func TestApplyFileOverlay(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "gemini:\n  model: gemini-file\npipeline:\n  confidence_threshold: 0.95\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg := LoadConfig()
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}
	if cfg.Gemini.Model != "gemini-file" {
		t.Fatalf("file model not applied: %s", cfg.Gemini.Model)
	}
	if cfg.Pipeline.ConfidenceThreshold != 0.95 {
		t.Fatalf("file threshold not applied: %v", cfg.Pipeline.ConfidenceThreshold)
	}
	// env value survives where the file is silent
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("env api key lost: %s", cfg.Gemini.APIKey)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := LoadConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("config without api key accepted")
	}
}
