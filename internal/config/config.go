package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings chtop reads from its config file.
type Config struct {
	Addr          string
	User          string
	Password      string
	Refresh       time.Duration
	Timeout       time.Duration
	FailThreshold int
	PromptTimeout time.Duration
}

const (
	defaultConfigPath = "~/.config/chtop/config.toml"
	defaultAddr       = "127.0.0.1:8123"

	// DefaultRefresh is the poll cadence when the config does not set one.
	DefaultRefresh = 3 * time.Second

	// DefaultTimeout bounds each backend request.
	DefaultTimeout = 5 * time.Second

	// DefaultFailThreshold is how many consecutive poll failures it takes
	// before the persistent offline banner appears.
	DefaultFailThreshold = 3

	// DefaultPromptTimeout bounds the query-ID prompt; an idle prompt is
	// abandoned after this long.
	DefaultPromptTimeout = 30 * time.Second
)

// Load locates and parses the chtop config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Addr                 string `toml:"addr"`
		User                 string `toml:"user"`
		Password             string `toml:"password"`
		RefreshSeconds       int    `toml:"refresh_seconds"`
		TimeoutSeconds       int    `toml:"timeout_seconds"`
		FailThreshold        int    `toml:"fail_threshold"`
		PromptTimeoutSeconds int    `toml:"prompt_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if addr := strings.TrimSpace(raw.Addr); addr != "" {
		cfg.Addr = addr
	}
	cfg.User = strings.TrimSpace(raw.User)
	cfg.Password = raw.Password
	if raw.RefreshSeconds > 0 {
		cfg.Refresh = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.FailThreshold > 0 {
		cfg.FailThreshold = raw.FailThreshold
	}
	if raw.PromptTimeoutSeconds > 0 {
		cfg.PromptTimeout = time.Duration(raw.PromptTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Addr:          defaultAddr,
		Refresh:       DefaultRefresh,
		Timeout:       DefaultTimeout,
		FailThreshold: DefaultFailThreshold,
		PromptTimeout: DefaultPromptTimeout,
	}
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
