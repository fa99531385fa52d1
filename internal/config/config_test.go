package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.LLM.Model != "claude-sonnet-4-5-20250514" {
		t.Errorf("expected claude-sonnet model, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("expected api_key_env ANTHROPIC_API_KEY, got %q", cfg.LLM.APIKeyEnv)
	}
	if cfg.Usage.MonthlyLimit != 50 {
		t.Errorf("expected monthly_limit 50, got %d", cfg.Usage.MonthlyLimit)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
llm:
  model: claude-haiku-4-5
usage:
  monthly_limit: 10
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.LLM.Model != "claude-haiku-4-5" {
		t.Errorf("expected model 'claude-haiku-4-5', got %q", cfg.LLM.Model)
	}
	if cfg.Usage.MonthlyLimit != 10 {
		t.Errorf("expected monthly_limit 10, got %d", cfg.Usage.MonthlyLimit)
	}
	// Defaults should still be set for unspecified fields
	if cfg.LLM.BaseURL != "https://api.anthropic.com" {
		t.Errorf("expected default base_url, got %q", cfg.LLM.BaseURL)
	}
	if cfg.Defaults.Tone != "professional" {
		t.Errorf("expected default tone 'professional', got %q", cfg.Defaults.Tone)
	}
	if cfg.LLM.ExtractMaxTokens != 2048 {
		t.Errorf("expected default extract_max_tokens 2048, got %d", cfg.LLM.ExtractMaxTokens)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Defaults.Length != "medium" {
		t.Errorf("expected default length 'medium', got %q", cfg.Defaults.Length)
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
}
