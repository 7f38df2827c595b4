package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirOverride(t *testing.T) {
	t.Parallel()
	h := New("/srv/nanobot")
	if got := h.Dir(); got != "/srv/nanobot" {
		t.Errorf("expected /srv/nanobot, got %q", got)
	}
	if got := h.ConfigPath(); got != filepath.Join("/srv/nanobot", "config.json") {
		t.Errorf("expected config under override, got %q", got)
	}
}

func TestDirFromEnv(t *testing.T) {
	t.Setenv("NANOBOT_HOME", "  /tmp/nb  ")
	h := New("")
	if got := h.Dir(); got != "/tmp/nb" {
		t.Errorf("expected trimmed env home /tmp/nb, got %q", got)
	}
}

func TestDirDefault(t *testing.T) {
	t.Setenv("NANOBOT_HOME", "")
	t.Setenv("HOME", "/home/alice")
	h := New("")
	if got := h.Dir(); got != filepath.Join("/home/alice", ".nanobot") {
		t.Errorf("expected ~/.nanobot, got %q", got)
	}
}

func TestPathLayout(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	h := New(tmp)

	if got := h.SessionsDir(); got != filepath.Join(tmp, "sessions") {
		t.Errorf("unexpected sessions dir %q", got)
	}
	if got := h.CronStorePath(); got != filepath.Join(tmp, "cron", "jobs.json") {
		t.Errorf("unexpected cron store path %q", got)
	}
	if got := h.WorkspaceRoot(); got != filepath.Join(tmp, "workspace") {
		t.Errorf("expected default workspace, got %q", got)
	}
	if got := h.SkillsDir(); got != filepath.Join(tmp, "workspace", "skills") {
		t.Errorf("unexpected skills dir %q", got)
	}
	if got := h.MemoryDir(); got != filepath.Join(tmp, "workspace", "memory") {
		t.Errorf("unexpected memory dir %q", got)
	}
}

func TestWorkspaceRootFromConfig(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	h := New(tmp)

	cfg := `{"agents": {"defaults": {"workspace": "/data/ws"}}}`
	os.WriteFile(filepath.Join(tmp, "config.json"), []byte(cfg), 0o644)

	if got := h.WorkspaceRoot(); got != "/data/ws" {
		t.Errorf("expected configured workspace /data/ws, got %q", got)
	}
	if got := h.SkillsDir(); got != filepath.Join("/data/ws", "skills") {
		t.Errorf("expected skills under configured workspace, got %q", got)
	}
}

func TestWorkspaceRootTildeExpansion(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", "/home/bob")
	h := New(tmp)

	cfg := `{"agents": {"defaults": {"workspace": "~/agent-ws"}}}`
	os.WriteFile(filepath.Join(tmp, "config.json"), []byte(cfg), 0o644)

	want := filepath.Join("/home/bob", "agent-ws")
	if got := h.WorkspaceRoot(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkspaceRootIgnoresBrokenConfig(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	h := New(tmp)

	os.WriteFile(filepath.Join(tmp, "config.json"), []byte("{not json"), 0o644)

	if got := h.WorkspaceRoot(); got != filepath.Join(tmp, "workspace") {
		t.Errorf("expected default workspace on broken config, got %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	t.Setenv("HOME", "/home/carol")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", "/home/carol"},
		{"tilde slash", "~/ws", filepath.Join("/home/carol", "ws")},
		{"no tilde", "/abs/path", "/abs/path"},
		{"relative", "rel/path", "rel/path"},
		{"tilde mid-path", "/a/~/b", "/a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.in); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
