package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIPort != "8000" {
		t.Fatalf("expected default api port 8000, got %s", cfg.APIPort)
	}
	if cfg.SearchLimit != 3 {
		t.Fatalf("expected default search limit 3, got %d", cfg.SearchLimit)
	}
	if cfg.MaxUploadFiles != 10 {
		t.Fatalf("expected default max upload files 10, got %d", cfg.MaxUploadFiles)
	}
	if cfg.OpenAISummaryModel != "gpt-4o-mini" {
		t.Fatalf("unexpected summary model %s", cfg.OpenAISummaryModel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9001")
	t.Setenv("SEARCH_LIMIT", "7")
	t.Setenv("SUMMARY_MAX_TOKENS", "not-a-number")

	cfg := Load()
	if cfg.APIPort != "9001" {
		t.Fatalf("expected api port 9001, got %s", cfg.APIPort)
	}
	if cfg.SearchLimit != 7 {
		t.Fatalf("expected search limit 7, got %d", cfg.SearchLimit)
	}
	if cfg.SummaryMaxTokens != 150 {
		t.Fatalf("expected fallback for bad int, got %d", cfg.SummaryMaxTokens)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nDOTENV_PROBE=from-file\nDOTENV_KEPT=\"quoted\"\nmalformed line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DOTENV_PROBE", "")
	t.Setenv("DOTENV_KEPT", "")

	LoadEnvFiles(path)

	if got := os.Getenv("DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
	if got := os.Getenv("DOTENV_KEPT"); got != "quoted" {
		t.Fatalf("expected quotes stripped, got %q", got)
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_port: \"9100\"\nsearch_limit: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()
	if cfg.APIPort != "9100" {
		t.Fatalf("expected api port from file, got %s", cfg.APIPort)
	}
	if cfg.SearchLimit != 5 {
		t.Fatalf("expected search limit from file, got %d", cfg.SearchLimit)
	}
}
