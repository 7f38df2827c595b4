//go:build !windows

package runtime

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// TerminateTree signals the process and its direct children with
// SIGTERM. Failures are ignored; the pattern sweep catches stragglers.
func (n *Nanobot) TerminateTree(pid int) {
	_ = exec.Command("pkill", "-TERM", "-P", strconv.Itoa(pid)).Run()
	_ = exec.Command("kill", "-TERM", strconv.Itoa(pid)).Run()
}

// FindByPattern reports whether any process matches the kind's
// command-line pattern. Unknown kinds and scan failures read as not
// running.
func (n *Nanobot) FindByPattern(kind string) bool {
	pattern := PatternFor(kind)
	if pattern == "" {
		return false
	}
	return exec.Command("pgrep", "-f", pattern).Run() == nil
}

// KillByPattern terminates every process matching the kind's
// command-line pattern.
func (n *Nanobot) KillByPattern(kind string) {
	pattern := PatternFor(kind)
	if pattern == "" {
		return
	}
	_ = exec.Command("pkill", "-f", pattern).Run()
}

// VenvPython returns the interpreter inside a checkout's .venv, or ""
// when none exists.
func VenvPython(repo string) string {
	for _, name := range []string{"python3", "python"} {
		exe := filepath.Join(repo, ".venv", "bin", name)
		if _, err := os.Stat(exe); err == nil {
			return exe
		}
	}
	return ""
}
