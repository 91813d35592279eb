package config

import (
	"os"
	"testing"
)

// chdir moves the test into dir so a developer's config.yaml can't leak in.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 8000 {
		t.Fatalf("default port = %d, want 8000", cfg.Port)
	}
	if cfg.Debug {
		t.Fatalf("debug should default to false")
	}
	if cfg.DBDriver != "sqlite" || cfg.DBPath != "researchsynth.db" {
		t.Fatalf("unexpected db defaults: %s / %s", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.MaxDocumentBytes != 10_000_000 {
		t.Fatalf("max_document_bytes = %d, want 10000000", cfg.MaxDocumentBytes)
	}
	if cfg.APIURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected api_url default: %s", cfg.APIURL)
	}
}

func TestLoad_BareEnvVars(t *testing.T) {
	chdir(t, t.TempDir())

	// PORT / DEBUG / API_URL are the platform-facing names
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("API_URL", "http://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("PORT env not honored: got %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatalf("DEBUG env not honored")
	}
	if cfg.APIURL != "http://api.example.com" {
		t.Fatalf("API_URL env not honored: got %s", cfg.APIURL)
	}
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("PORT", "9090")
	t.Setenv("RSYNTH_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Fatalf("RSYNTH_PORT should win over PORT: got %d", cfg.Port)
	}
}
