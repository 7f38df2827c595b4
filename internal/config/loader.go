package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the project root for file
// discovery. This is the testable entry point; Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./nanotop.yaml (relative to project dir)
	local := filepath.Join(dir, "nanotop.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/nanotop/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "nanotop", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge merges override onto base. Scalar fields override when non-zero.
// Pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	// Nanobot
	if override.Nanobot.Home != "" {
		base.Nanobot.Home = override.Nanobot.Home
	}
	if override.Nanobot.Python != "" {
		base.Nanobot.Python = override.Nanobot.Python
	}
	if override.Nanobot.Repo != "" {
		base.Nanobot.Repo = override.Nanobot.Repo
	}
	if override.Nanobot.GatewayVerbose {
		base.Nanobot.GatewayVerbose = true
	}
	if override.Nanobot.SessionID != "" {
		base.Nanobot.SessionID = override.Nanobot.SessionID
	}

	// Shell: *bool fields override when non-nil
	if override.Shell.Autostart != nil {
		base.Shell.Autostart = override.Shell.Autostart
	}
	if override.Shell.ScanProcesses {
		base.Shell.ScanProcesses = true
	}
	if override.Shell.EchoLogs {
		base.Shell.EchoLogs = true
	}
	if override.Shell.RefreshMS != 0 {
		base.Shell.RefreshMS = override.Shell.RefreshMS
	}

	// UI: *bool fields override when non-nil
	if override.UI.StreamLogs != nil {
		base.UI.StreamLogs = override.UI.StreamLogs
	}
	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
}

// applyEnvOverrides applies NANOTOP_* and NANOBOT_* environment variables on
// top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("NANOBOT_HOME")); v != "" {
		cfg.Nanobot.Home = v
	}
	if v := os.Getenv("NANOBOT_GATEWAY_VERBOSE"); v != "" {
		cfg.Nanobot.GatewayVerbose = true
	}
	if v := os.Getenv("NANOBOT_SCAN_PROCS"); v != "" {
		cfg.Shell.ScanProcesses = true
	}
	if v := os.Getenv("NANOBOT_LOG_STDOUT"); v != "" {
		cfg.Shell.EchoLogs = true
	}
	if v := os.Getenv("NANOTOP_REFRESH_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Shell.RefreshMS = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: NANOTOP_REFRESH_MS=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("NANOTOP_SCROLL_SPEED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.LogScrollSpeed = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: NANOTOP_SCROLL_SPEED=%q is not a valid integer, ignoring\n", v)
		}
	}
}
