package runtime

import (
	"context"
	"strings"
	"testing"
)

func TestPatternFor(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{KindAgent, "nanobot agent"},
		{KindGateway, "nanobot gateway"},
		{"web", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PatternFor(tt.kind); got != tt.want {
			t.Errorf("PatternFor(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPythonPathOverride(t *testing.T) {
	n := NewNanobot(Options{Python: "/opt/custom/python"})
	if got := n.pythonPath(); got != "/opt/custom/python" {
		t.Errorf("expected override to win, got %q", got)
	}
}

func TestCommandArgs(t *testing.T) {
	n := NewNanobot(Options{Python: "/usr/bin/python3"})
	cmd := n.command(context.Background(), "-u", "-m", "nanobot", "agent", "--daemon")

	if cmd.Path != "/usr/bin/python3" {
		t.Errorf("expected interpreter path, got %q", cmd.Path)
	}
	want := []string{"/usr/bin/python3", "-u", "-m", "nanobot", "agent", "--daemon"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(cmd.Args), cmd.Args)
	}
	for i, arg := range want {
		if cmd.Args[i] != arg {
			t.Errorf("arg %d: expected %q, got %q", i, arg, cmd.Args[i])
		}
	}
}

func TestCommandEnv(t *testing.T) {
	n := NewNanobot(Options{Python: "/usr/bin/python3", Home: "/tmp/nanobot-home"})
	cmd := n.command(context.Background(), "-m", "nanobot", "gateway")

	env := strings.Join(cmd.Env, "\n")
	for _, want := range []string{
		"PYTHONUNBUFFERED=1",
		"PYTHONIOENCODING=utf-8",
		"PYTHONUTF8=1",
		"NO_COLOR=1",
		"TERM=dumb",
		"COLUMNS=120",
		"RICH_DISABLE=1",
		"LOGURU_ENQUEUE=True",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("expected env to contain %q", want)
		}
	}
}

func TestCommandEnvHome(t *testing.T) {
	t.Setenv("NANOBOT_HOME", "")
	n := NewNanobot(Options{Python: "/usr/bin/python3", Home: "/tmp/nanobot-home"})
	cmd := n.command(context.Background(), "-m", "nanobot", "gateway")

	found := false
	for _, kv := range cmd.Env {
		if kv == "NANOBOT_HOME=/tmp/nanobot-home" {
			found = true
		}
	}
	if !found {
		t.Error("expected NANOBOT_HOME to be set for the child")
	}
}

func TestStartUnknownKind(t *testing.T) {
	n := NewNanobot(Options{Python: "/usr/bin/python3"})
	if _, err := n.Start(context.Background(), "web"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestStartArgs(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		verbose bool
		want    string
	}{
		{"agent", KindAgent, false, "-u -m nanobot agent --daemon"},
		{"gateway", KindGateway, false, "-u -m nanobot gateway"},
		{"gateway verbose", KindGateway, true, "-u -m nanobot gateway --verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(startArgs(tt.kind, tt.verbose), " ")
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStartArgsUnknownKind(t *testing.T) {
	if args := startArgs("web", false); args != nil {
		t.Errorf("expected nil args for unknown kind, got %v", args)
	}
}
