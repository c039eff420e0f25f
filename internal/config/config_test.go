package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default api url, got %s", cfg.APIURL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Set("api_url", "https://events.example.com/api"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cfg.Set("log.level", "debug"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.APIURL != "https://events.example.com/api" {
		t.Errorf("api_url did not round trip: %s", loaded.APIURL)
	}
	if got, _ := loaded.Get("log.level"); got != "debug" {
		t.Errorf("log.level did not round trip: %s", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvAPIURL, "https://override.example.com/api")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvTokenPassphrase, "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "https://override.example.com/api" {
		t.Errorf("env should override api url, got %s", cfg.APIURL)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("env should override log format, got %s", cfg.Log.Format)
	}
	if cfg.TokenPassphrase != "hunter2" {
		t.Errorf("passphrase should come from env, got %q", cfg.TokenPassphrase)
	}
}

func TestPassphraseNeverWritten(t *testing.T) {
	dir := useTempConfigDir(t)
	t.Setenv(EnvTokenPassphrase, "hunter2")

	cfg, _ := Load()
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("config file is empty")
	}
	if strings.Contains(string(data), "hunter2") {
		t.Error("passphrase leaked into the config file")
	}
}

func TestUnknownKey(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.Get("no_such_key"); err == nil {
		t.Error("Get with an unknown key should fail")
	}
	if err := cfg.Set("no_such_key", "x"); err == nil {
		t.Error("Set with an unknown key should fail")
	}
}
