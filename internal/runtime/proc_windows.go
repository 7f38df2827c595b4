//go:build windows

package runtime

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// TerminateTree force-kills the process tree rooted at pid.
func (n *Nanobot) TerminateTree(pid int) {
	_ = exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/T", "/F").Run()
}

// FindByPattern reports whether any process matches the kind's
// command-line pattern. Unknown kinds and scan failures read as not
// running.
func (n *Nanobot) FindByPattern(kind string) bool {
	pattern := PatternFor(kind)
	if pattern == "" {
		return false
	}
	script := fmt.Sprintf(
		"Get-CimInstance Win32_Process | Where-Object { $_.CommandLine -match '%s' } | Select-Object -First 1 -ExpandProperty ProcessId",
		pattern,
	)
	out, err := exec.Command("powershell", "-NoProfile", "-Command", script).Output()
	if err != nil {
		return false
	}
	return len(bytes.TrimSpace(out)) > 0
}

// KillByPattern terminates every process matching the kind's
// command-line pattern.
func (n *Nanobot) KillByPattern(kind string) {
	pattern := PatternFor(kind)
	if pattern == "" {
		return
	}
	script := fmt.Sprintf(
		"Get-CimInstance Win32_Process | Where-Object { $_.CommandLine -match '%s' } | ForEach-Object { Stop-Process -Id $_.ProcessId -Force }",
		pattern,
	)
	_ = exec.Command("powershell", "-NoProfile", "-Command", script).Run()
}

// VenvPython returns the interpreter inside a checkout's .venv, or ""
// when none exists.
func VenvPython(repo string) string {
	exe := filepath.Join(repo, ".venv", "Scripts", "python.exe")
	if _, err := os.Stat(exe); err == nil {
		return exe
	}
	return ""
}
