// Package detect locates the pieces of a nanobot installation: a python
// interpreter, a source checkout, and the installed package itself.
package detect

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/nanobot-ai/nanotop/internal/runtime"
)

// Result describes the nanobot environment found on this machine.
type Result struct {
	Python       string // interpreter path, empty when none was found
	PythonSource string // "config", "venv", or "path"
	Repo         string // validated source checkout, empty when absent
	CLI          string // nanobot console script on PATH, empty when absent
	Version      string // installed package version, empty when unknown
}

// Options narrow the search. Both fields come from the shell config and
// may be empty.
type Options struct {
	Python string // explicit interpreter path
	Repo   string // nanobot source checkout
}

// Detect inspects the machine and returns what it found. Detection never
// fails; an empty Result field means that piece is missing.
func Detect(opts Options) *Result {
	r := &Result{Repo: detectRepo(opts.Repo)}
	r.Python, r.PythonSource = detectPython(opts.Python, r.Repo)
	if path, err := exec.LookPath("nanobot"); err == nil {
		r.CLI = path
	}
	if r.Python != "" {
		r.Version = probeVersion(r.Python)
	}
	return r
}

// Installed reports whether some way of running nanobot exists: an
// importable package, a console script, or a source checkout.
func (r *Result) Installed() bool {
	return r.Version != "" || r.CLI != "" || r.Repo != ""
}

// detectPython resolves the interpreter the same way process spawning
// does: explicit config path, then a checkout venv, then PATH.
func detectPython(override, repo string) (string, string) {
	if override != "" && fileExists(override) {
		return override, "config"
	}
	if repo != "" {
		if venv := runtime.VenvPython(repo); venv != "" {
			return venv, "venv"
		}
	}
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, "path"
		}
	}
	return "", ""
}

// detectRepo accepts a checkout path only when it holds a pyproject.toml
// that mentions nanobot.
func detectRepo(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(path, "pyproject.toml"))
	if err != nil {
		return ""
	}
	if !strings.Contains(string(data), "nanobot") {
		return ""
	}
	return path
}

// probeVersion asks the interpreter for the installed package version.
// Any failure, including a missing package, reads as unknown.
func probeVersion(python string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	script := "import importlib.metadata; print(importlib.metadata.version('nanobot'))"
	out, err := exec.CommandContext(ctx, python, "-c", script).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
