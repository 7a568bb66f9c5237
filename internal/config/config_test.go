package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envServerURL, "")
	t.Setenv(envPollSeconds, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, defaultServerURL)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
}

func TestLoad_ReadsFileValues(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envServerURL, "")
	t.Setenv(envPollSeconds, "")

	configFile := filepath.Join(tmp, "config.toml")
	content := "server_url = \"studyapp.example.com:9090\"\npoll_seconds = 10\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "studyapp.example.com:9090" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmp := t.TempDir()
	configFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(configFile, []byte("server_url = \"from-file:1\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv(envServerURL, "from-env:2")
	t.Setenv(envPollSeconds, "7")

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "from-env:2" {
		t.Fatalf("ServerURL = %q, want the env override", cfg.ServerURL)
	}
	if cfg.PollInterval != 7*time.Second {
		t.Fatalf("PollInterval = %v, want 7s", cfg.PollInterval)
	}
}

func TestLoad_IgnoresInvalidEnvPollSeconds(t *testing.T) {
	tmp := t.TempDir()
	configFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(configFile, []byte("poll_seconds = 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv(envServerURL, "")
	t.Setenv(envPollSeconds, "not-a-number")

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != 4*time.Second {
		t.Fatalf("PollInterval = %v, want the file value", cfg.PollInterval)
	}
}

func TestLoad_BrokenFileIsAnError(t *testing.T) {
	tmp := t.TempDir()
	configFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(configFile, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(configFile); err == nil {
		t.Fatal("Load returned nil for a broken file, want an error")
	}
}
