package runtime

import (
	"context"
	"io"
	"os/exec"
)

// Kinds of supervised nanobot children.
const (
	KindAgent   = "agent"
	KindGateway = "gateway"
)

// Runtime launches and controls nanobot child processes. The process
// manager talks to children only through this interface so tests can
// substitute fakes.
type Runtime interface {
	// Start spawns the long-lived child for kind with stdout and
	// stderr piped back to the caller. Canceling ctx kills the child.
	Start(ctx context.Context, kind string) (*Process, error)

	// RunAgentMessage runs a one-shot agent turn and returns the
	// combined stdout and stderr output.
	RunAgentMessage(ctx context.Context, message, sessionID string) (string, error)

	// TerminateTree signals the process and its children to exit.
	// Best effort; failures are silent.
	TerminateTree(pid int)

	// FindByPattern reports whether a process matching the kind's
	// command-line pattern is running anywhere on the system.
	FindByPattern(kind string) bool

	// KillByPattern terminates every process matching the kind's
	// command-line pattern. Best effort; failures are silent.
	KillByPattern(kind string)
}

// Process is a handle to a spawned child.
type Process struct {
	PID    int
	Cmd    *exec.Cmd
	Stdout io.ReadCloser
	Stderr io.ReadCloser
	Done   chan error
}

// PatternFor returns the command-line pattern that identifies external
// processes of the given kind, or "" for unknown kinds.
func PatternFor(kind string) string {
	switch kind {
	case KindAgent:
		return "nanobot agent"
	case KindGateway:
		return "nanobot gateway"
	}
	return ""
}
