package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Nanobot.SessionID != "tui" {
		t.Errorf("expected session id %q, got %q", "tui", cfg.Nanobot.SessionID)
	}
	if cfg.Shell.RefreshMS != 2000 {
		t.Errorf("expected refresh_ms 2000, got %d", cfg.Shell.RefreshMS)
	}
	if cfg.UI.LogScrollSpeed != 3 {
		t.Errorf("expected log scroll speed 3, got %d", cfg.UI.LogScrollSpeed)
	}
	if cfg.Shell.Autostart == nil || !*cfg.Shell.Autostart {
		t.Error("expected Autostart default to be true")
	}
	if cfg.UI.StreamLogs == nil || !*cfg.UI.StreamLogs {
		t.Error("expected StreamLogs default to be true")
	}
	if cfg.Shell.ScanProcesses {
		t.Error("expected ScanProcesses default to be false")
	}
	if cfg.Shell.EchoLogs {
		t.Error("expected EchoLogs default to be false")
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	yaml := `
nanobot:
  repo: /opt/nanobot
  gateway_verbose: true
shell:
  refresh_ms: 500
`
	os.WriteFile(filepath.Join(tmp, "nanotop.yaml"), []byte(yaml), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Nanobot.Repo != "/opt/nanobot" {
		t.Errorf("expected repo %q, got %q", "/opt/nanobot", cfg.Nanobot.Repo)
	}
	if !cfg.Nanobot.GatewayVerbose {
		t.Error("expected gateway_verbose true from file")
	}
	if cfg.Shell.RefreshMS != 500 {
		t.Errorf("expected refresh_ms 500, got %d", cfg.Shell.RefreshMS)
	}
}

func TestMergePreservesDefaults(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	override := &Config{
		Nanobot: NanobotConfig{Python: "/usr/bin/python3"},
	}

	merge(&base, override)

	if base.Nanobot.Python != "/usr/bin/python3" {
		t.Errorf("expected python %q, got %q", "/usr/bin/python3", base.Nanobot.Python)
	}
	if base.Nanobot.SessionID != "tui" {
		t.Errorf("expected session id preserved as %q, got %q", "tui", base.Nanobot.SessionID)
	}
	if base.Shell.RefreshMS != 2000 {
		t.Errorf("expected refresh_ms preserved as 2000, got %d", base.Shell.RefreshMS)
	}
	if base.UI.LogScrollSpeed != 3 {
		t.Errorf("expected log scroll speed preserved as 3, got %d", base.UI.LogScrollSpeed)
	}
}

func TestMergeBoolPtrOverride(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()

	f := false
	override := &Config{
		Shell: ShellConfig{Autostart: &f},
		UI:    UIConfig{StreamLogs: &f},
	}

	merge(&base, override)

	if base.Shell.Autostart == nil || *base.Shell.Autostart != false {
		t.Error("expected Autostart to be overridden to false")
	}
	if base.UI.StreamLogs == nil || *base.UI.StreamLogs != false {
		t.Error("expected StreamLogs to be overridden to false")
	}
}

func TestMergeBoolPtrNilPreservesDefault(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	override := &Config{}

	merge(&base, override)

	if base.Shell.Autostart == nil || *base.Shell.Autostart != true {
		t.Error("expected Autostart to remain true when override is nil")
	}
	if base.UI.StreamLogs == nil || *base.UI.StreamLogs != true {
		t.Error("expected StreamLogs to remain true when override is nil")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "nanotop.yaml"), []byte("---\n"), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error on empty file: %v", err)
	}

	if cfg.Shell.RefreshMS != 2000 {
		t.Errorf("expected default refresh_ms 2000, got %d", cfg.Shell.RefreshMS)
	}
}

func TestLoadBoolFromYAML(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "nanotop.yaml"), []byte(`
shell:
  autostart: false
ui:
  stream_logs: false
`), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Shell.Autostart == nil || *cfg.Shell.Autostart != false {
		t.Error("expected autostart: false from YAML to override default true")
	}
	if cfg.AutostartEnabled() {
		t.Error("expected AutostartEnabled() false after override")
	}
	if cfg.UI.StreamLogs == nil || *cfg.UI.StreamLogs != false {
		t.Error("expected stream_logs: false from YAML to override default true")
	}
	if cfg.StreamLogsEnabled() {
		t.Error("expected StreamLogsEnabled() false after override")
	}
}

func TestDiscoveryChain(t *testing.T) {
	// Uses t.Setenv so cannot be parallel
	tmp := t.TempDir()

	projectDir := filepath.Join(tmp, "project")
	os.MkdirAll(projectDir, 0755)
	os.WriteFile(filepath.Join(projectDir, "nanotop.yaml"), []byte(`
nanobot:
  session_id: project-level
`), 0644)

	homeDir := filepath.Join(tmp, "home")
	configDir := filepath.Join(homeDir, ".config", "nanotop")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(`
nanobot:
  session_id: user-level
`), 0644)

	t.Setenv("HOME", homeDir)

	cfg, err := LoadFrom(projectDir)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Nanobot.SessionID != "project-level" {
		t.Errorf("expected project-level config, got %q", cfg.Nanobot.SessionID)
	}

	emptyDir := filepath.Join(tmp, "empty")
	os.MkdirAll(emptyDir, 0755)

	cfg, err = LoadFrom(emptyDir)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Nanobot.SessionID != "user-level" {
		t.Errorf("expected user-level config fallback, got %q", cfg.Nanobot.SessionID)
	}
}

// Env override tests use t.Setenv, so they cannot be parallel.

func TestEnvOverrideHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOBOT_HOME", "  /srv/nanobot  ")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Nanobot.Home != "/srv/nanobot" {
		t.Errorf("expected trimmed home %q, got %q", "/srv/nanobot", cfg.Nanobot.Home)
	}
}

func TestEnvOverrideGatewayVerbose(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOBOT_GATEWAY_VERBOSE", "1")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Nanobot.GatewayVerbose {
		t.Error("expected gateway verbose enabled by env")
	}
}

func TestEnvOverrideScanProcs(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOBOT_SCAN_PROCS", "1")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Shell.ScanProcesses {
		t.Error("expected process scanning enabled by env")
	}
}

func TestEnvOverrideLogStdout(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOBOT_LOG_STDOUT", "1")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if !cfg.Shell.EchoLogs {
		t.Error("expected log echo enabled by env")
	}
}

func TestEnvOverrideRefreshMS(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOTOP_REFRESH_MS", "250")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Shell.RefreshMS != 250 {
		t.Errorf("expected refresh_ms 250, got %d", cfg.Shell.RefreshMS)
	}
}

func TestEnvOverrideInvalidInt(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOTOP_REFRESH_MS", "notanumber")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() should succeed with invalid env override, got: %v", err)
	}
	if cfg.Shell.RefreshMS != 2000 {
		t.Errorf("expected default refresh_ms 2000 (invalid env ignored), got %d", cfg.Shell.RefreshMS)
	}
}

func TestEnvOverrideScrollSpeed(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NANOTOP_SCROLL_SPEED", "5")

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.LogScrollSpeed != 5 {
		t.Errorf("expected log scroll speed 5, got %d", cfg.UI.LogScrollSpeed)
	}
}

func TestRefreshInterval(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if got := cfg.RefreshInterval().Milliseconds(); got != 2000 {
		t.Errorf("expected 2000ms refresh interval, got %d", got)
	}
}
