package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Options configures how nanobot children are launched.
type Options struct {
	// Python overrides interpreter discovery with an explicit path.
	Python string
	// Repo is a nanobot source checkout to run from. When set, the
	// checkout's .venv interpreter is preferred and PYTHONPATH points
	// at the checkout.
	Repo string
	// Home is the nanobot home directory passed to children when the
	// environment does not already name one.
	Home string
	// GatewayVerbose adds --verbose to the gateway command line.
	GatewayVerbose bool
	// Debug prints interpreter discovery to stdout.
	Debug bool
}

// Nanobot runs the python-based nanobot CLI.
type Nanobot struct {
	opts Options
}

// NewNanobot creates a runtime that launches the nanobot CLI through
// a python interpreter.
func NewNanobot(opts Options) *Nanobot {
	return &Nanobot{opts: opts}
}

// Start spawns the long-lived child for kind. The agent runs as a
// daemon with its stdin pipe held open; the gateway runs detached from
// stdin entirely.
func (n *Nanobot) Start(ctx context.Context, kind string) (*Process, error) {
	args := startArgs(kind, n.opts.GatewayVerbose)
	if args == nil {
		return nil, fmt.Errorf("unknown process %q", kind)
	}
	cmd := n.command(ctx, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}
	if kind == KindAgent {
		if _, err := cmd.StdinPipe(); err != nil {
			return nil, fmt.Errorf("creating stdin pipe: %w", err)
		}
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting nanobot %s: %w", kind, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	return &Process{
		PID:    cmd.Process.Pid,
		Cmd:    cmd,
		Stdout: stdout,
		Stderr: stderr,
		Done:   done,
	}, nil
}

// RunAgentMessage runs a single agent turn and returns the combined
// output, stdout first then stderr. A non-zero exit still returns the
// output; the CLI reports its own errors there.
func (n *Nanobot) RunAgentMessage(ctx context.Context, message, sessionID string) (string, error) {
	cmd := n.command(ctx, "-m", "nanobot", "agent", "--message", message, "--session", sessionID)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("running agent message: %w", err)
		}
	}
	return stdout.String() + stderr.String(), nil
}

// RunOnboard runs the interactive onboarding flow with the caller's
// terminal attached and reports the CLI's exit status.
func (n *Nanobot) RunOnboard(ctx context.Context) error {
	cmd := n.command(ctx, "-m", "nanobot", "onboard")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// startArgs returns the command line for a long-lived child, or nil
// for unknown kinds.
func startArgs(kind string, gatewayVerbose bool) []string {
	switch kind {
	case KindAgent:
		return []string{"-u", "-m", "nanobot", "agent", "--daemon"}
	case KindGateway:
		args := []string{"-u", "-m", "nanobot", "gateway"}
		if gatewayVerbose {
			args = append(args, "--verbose")
		}
		return args
	}
	return nil
}

// command builds a nanobot invocation with the environment the CLI
// expects when driven non-interactively: unbuffered UTF-8 output with
// color and rich formatting disabled.
func (n *Nanobot) command(ctx context.Context, args ...string) *exec.Cmd {
	python := n.pythonPath()
	if n.opts.Debug {
		fmt.Printf("[nanotop] python=%s\n", python)
	}

	cmd := exec.CommandContext(ctx, python, args...)
	if dirExists(n.opts.Repo) {
		cmd.Dir = n.opts.Repo
	} else if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}

	env := append(os.Environ(),
		"PYTHONIOENCODING=utf-8",
		"PYTHONUTF8=1",
		"PYTHONUNBUFFERED=1",
		"LOGURU_ENQUEUE=True",
		"TERM=dumb",
		"COLUMNS=120",
		"NO_COLOR=1",
		"RICH_DISABLE=1",
	)
	if os.Getenv("LOGURU_LEVEL") == "" {
		env = append(env, "LOGURU_LEVEL=INFO")
	}
	if dirExists(n.opts.Repo) {
		env = append(env, "PYTHONPATH="+n.opts.Repo)
	}
	if os.Getenv("NANOBOT_HOME") == "" && n.opts.Home != "" {
		env = append(env, "NANOBOT_HOME="+n.opts.Home)
	}
	cmd.Env = env
	return cmd
}

// pythonPath resolves the interpreter for child processes. An explicit
// override wins, then a repo .venv, then whatever python is on PATH.
func (n *Nanobot) pythonPath() string {
	if n.opts.Python != "" {
		return n.opts.Python
	}
	if n.opts.Repo != "" {
		if venv := VenvPython(n.opts.Repo); venv != "" {
			return venv
		}
	}
	if path, err := exec.LookPath("python3"); err == nil {
		return path
	}
	return "python"
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
