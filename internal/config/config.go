package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields studyhall needs to reach the StudyApp
// server.
type Config struct {
	ServerURL    string
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/studyhall/config.toml"
	defaultServerURL    = "127.0.0.1:8080"
	defaultPollInterval = 3 * time.Second

	envServerURL   = "STUDYHALL_SERVER_URL"
	envPollSeconds = "STUDYHALL_POLL_SECONDS"
)

// Load locates and parses the studyhall config, falling back to
// defaults when missing. A .env file in the working directory and
// process environment variables override file values, in that order
// of discovery (STUDYHALL_SERVER_URL, STUDYHALL_POLL_SECONDS).
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{ServerURL: defaultServerURL, PollInterval: defaultPollInterval}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL   string `toml:"server_url"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if url := strings.TrimSpace(raw.ServerURL); url != "" {
		cfg.ServerURL = url
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}

	return applyEnv(cfg), nil
}

// applyEnv layers .env and environment overrides on top of cfg.
func applyEnv(cfg Config) Config {
	// Missing .env files are the normal case.
	_ = godotenv.Load()

	if url := strings.TrimSpace(os.Getenv(envServerURL)); url != "" {
		cfg.ServerURL = url
	}
	if raw := strings.TrimSpace(os.Getenv(envPollSeconds)); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cfg.PollInterval = time.Duration(seconds) * time.Second
		}
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
