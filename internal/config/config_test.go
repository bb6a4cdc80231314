package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("expected port 3000, got %q", cfg.Port)
	}
	if cfg.Model != "mistralai/devstral-2512:free" {
		t.Fatalf("unexpected model %q", cfg.Model)
	}
	if cfg.MaxTokens != 100 {
		t.Fatalf("expected 100 max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", cfg.Temperature)
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.ProviderTimeout)
	}
	if cfg.Configured() {
		t.Fatalf("expected unconfigured provider")
	}
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("expected default system prompt")
	}
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENROUTER_API_KEY=from-file\nexport PORT=8081\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("OPENROUTER_API_KEY", "from-env")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProviderKey != "from-env" {
		t.Fatalf("expected env key to win, got %q", cfg.ProviderKey)
	}
	if cfg.Port != "8081" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
}

func TestLoadRejectsInvalidTemperature(t *testing.T) {
	t.Setenv("COMFORT_TEMPERATURE", "3.5")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for temperature out of range")
	}
}

func TestLoadTrimsBaseURL(t *testing.T) {
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:9999/v1/")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProviderBaseURL != "http://localhost:9999/v1" {
		t.Fatalf("unexpected base url %q", cfg.ProviderBaseURL)
	}
}

func TestParseIDsSkipsInvalid(t *testing.T) {
	ids, skipped := parseIDs(" 42, abc, ,7 ")
	if len(ids) != 2 || ids[0] != 42 || ids[1] != 7 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if len(skipped) != 1 || skipped[0] != "abc" {
		t.Fatalf("unexpected skipped %v", skipped)
	}
	if ids, _ := parseIDs(""); ids != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestLoadDoesNotLogBeforeSetup(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	t.Setenv("ALLOWED_TELEGRAM_USER_IDS", "1,nope")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged while loading, got %q", buf.String())
	}
	if cfg.EnvFileErr == nil {
		t.Fatalf("expected missing .env to be reported")
	}
	if len(cfg.SkippedUserIDs) != 1 || cfg.SkippedUserIDs[0] != "nope" {
		t.Fatalf("unexpected skipped ids %v", cfg.SkippedUserIDs)
	}
}
