// Package home resolves and manipulates the nanobot home directory: the
// config file, agent workspace, skills, memory, sessions, and cron store
// that the nanobot children read and write.
package home

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Home locates the nanobot home directory and the files inside it.
type Home struct {
	override string
}

// New returns a Home rooted at override, or at the discovered default
// when override is empty.
func New(override string) *Home {
	return &Home{override: override}
}

// Dir returns the nanobot home directory: the explicit override if set,
// else NANOBOT_HOME (trimmed, non-empty), else ~/.nanobot.
func (h *Home) Dir() string {
	if h.override != "" {
		return h.override
	}
	if v := strings.TrimSpace(os.Getenv("NANOBOT_HOME")); v != "" {
		return v
	}
	if userHome, err := os.UserHomeDir(); err == nil {
		return filepath.Join(userHome, ".nanobot")
	}
	return ".nanobot"
}

// ConfigPath returns the path of the nanobot config file.
func (h *Home) ConfigPath() string {
	return filepath.Join(h.Dir(), "config.json")
}

// WorkspaceRoot returns the agent workspace: the workspace configured in
// config.json if present, else <home>/workspace.
func (h *Home) WorkspaceRoot() string {
	if ws, ok := h.configWorkspace(); ok {
		return ws
	}
	return filepath.Join(h.Dir(), "workspace")
}

// SkillsDir returns the workspace skills directory.
func (h *Home) SkillsDir() string {
	return filepath.Join(h.WorkspaceRoot(), "skills")
}

// MemoryDir returns the workspace memory directory.
func (h *Home) MemoryDir() string {
	return filepath.Join(h.WorkspaceRoot(), "memory")
}

// SessionsDir returns the session transcript directory.
func (h *Home) SessionsDir() string {
	return filepath.Join(h.Dir(), "sessions")
}

// CronStorePath returns the path of the cron job store.
func (h *Home) CronStorePath() string {
	return filepath.Join(h.Dir(), "cron", "jobs.json")
}

// configWorkspace reads agents.defaults.workspace from config.json.
// Any read or parse failure means "not configured".
func (h *Home) configWorkspace() (string, bool) {
	data, err := os.ReadFile(h.ConfigPath())
	if err != nil {
		return "", false
	}
	var parsed struct {
		Agents struct {
			Defaults struct {
				Workspace string `json:"workspace"`
			} `json:"defaults"`
		} `json:"agents"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", false
	}
	ws := parsed.Agents.Defaults.Workspace
	if ws == "" {
		return "", false
	}
	return ExpandTilde(ws), true
}

// ExpandTilde resolves a leading ~ or ~/ against the user home directory.
// Paths without a tilde prefix are returned unchanged.
func ExpandTilde(path string) string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return userHome
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(userHome, rest)
	}
	if rest, ok := strings.CutPrefix(path, `~\`); ok {
		return filepath.Join(userHome, rest)
	}
	return path
}
