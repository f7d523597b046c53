package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	cfg, err := Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected default port 4000; got %d", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("expected default env development; got %s", cfg.Server.Env)
	}
	if cfg.OpenLibrary.BaseURL != "https://openlibrary.org" {
		t.Errorf("unexpected openlibrary base url %s", cfg.OpenLibrary.BaseURL)
	}
	if !cfg.Limiter.Enabled {
		t.Error("expected limiter to be enabled by default")
	}
}

func TestDecodeFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	contents := []byte("server:\n  port: 9000\ndatabase:\n  dsn: postgres://localhost/libris\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV", "staging")

	cfg, err := Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from file; got %d", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://localhost/libris" {
		t.Errorf("unexpected dsn %s", cfg.Database.DSN)
	}
	if cfg.Server.Env != "staging" {
		t.Errorf("expected env override staging; got %s", cfg.Server.Env)
	}
}
