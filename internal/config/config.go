package config

import "time"

// Config is the nanotop shell configuration. Children get their own
// settings from the nanobot home; this file only shapes how the shell
// launches and displays them.
type Config struct {
	Nanobot NanobotConfig `yaml:"nanobot"`
	Shell   ShellConfig   `yaml:"shell"`
	UI      UIConfig      `yaml:"ui"`
}

// NanobotConfig describes how to reach the nanobot CLI.
type NanobotConfig struct {
	// Home overrides the nanobot home directory (default ~/.nanobot).
	Home string `yaml:"home"`
	// Python is an explicit interpreter path.
	Python string `yaml:"python"`
	// Repo is a nanobot source checkout to run from.
	Repo string `yaml:"repo"`
	// GatewayVerbose passes --verbose to the gateway.
	GatewayVerbose bool `yaml:"gateway_verbose"`
	// SessionID is the session used for chat messages.
	SessionID string `yaml:"session_id"`
}

// ShellConfig controls supervision behavior.
type ShellConfig struct {
	// Autostart launches both children when the shell starts and a
	// nanobot config exists.
	Autostart *bool `yaml:"autostart"`
	// ScanProcesses lets status checks fall back to a system-wide
	// process scan for children this shell does not manage.
	ScanProcesses bool `yaml:"scan_processes"`
	// EchoLogs mirrors every log entry to stdout.
	EchoLogs bool `yaml:"echo_logs"`
	// RefreshMS is the status poll interval in milliseconds.
	RefreshMS int `yaml:"refresh_ms"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// StreamLogs enables live log forwarding at startup.
	StreamLogs *bool `yaml:"stream_logs"`
	// LogScrollSpeed is the number of lines per scroll step.
	LogScrollSpeed int `yaml:"log_scroll_speed"`
}

// AutostartEnabled reports whether children start with the shell.
func (c *Config) AutostartEnabled() bool {
	return c.Shell.Autostart == nil || *c.Shell.Autostart
}

// StreamLogsEnabled reports whether log streaming starts enabled.
func (c *Config) StreamLogsEnabled() bool {
	return c.UI.StreamLogs == nil || *c.UI.StreamLogs
}

// RefreshInterval returns the status poll interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Shell.RefreshMS) * time.Millisecond
}
