package saku

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harunnryd/saku/pkg/errorsx"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: openai
  settings:
    api_key: sk-test
    model: gpt-4o-mini
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Chat.MaxToolRounds != 1 {
		t.Fatalf("expected default tool round budget 1, got %d", cfg.Chat.MaxToolRounds)
	}
	if cfg.Tools.Concurrency != 4 || cfg.Tools.TimeoutMS != 6000 {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Lookup.BaseURL != "https://swapi.dev/api" {
		t.Fatalf("unexpected lookup default: %s", cfg.Lookup.BaseURL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("SAKU_TEST_API_KEY", "sk-from-env")
	path := writeConfig(t, `
llm:
  provider: openai
  settings:
    api_key: ${SAKU_TEST_API_KEY}
    model: gpt-4o-mini
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.LLM.Settings["api_key"] != "sk-from-env" {
		t.Fatalf("expected env expansion in settings, got %v", cfg.LLM.Settings["api_key"])
	}
}

func TestLoadConfigRequiresProvider(t *testing.T) {
	path := writeConfig(t, `
chat:
  max_tool_rounds: 1
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !errorsx.HasReason(err, errorsx.ReasonConfig) {
		t.Fatalf("expected config reason, got %v", err)
	}
}

func TestLoadConfigRejectsZeroRounds(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: openai
chat:
  max_tool_rounds: 0
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation failure for zero round budget")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errorsx.HasReason(err, errorsx.ReasonConfig) {
		t.Fatalf("expected config reason, got %v", err)
	}
}
