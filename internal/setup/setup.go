// Package setup brings a machine from nothing to a working nanobot
// install: it runs the CLI's interactive onboarding when no config
// exists yet and seeds the workspace with the embedded starter skills.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nanobot-ai/nanotop/internal/home"
)

// Onboarder runs the nanobot CLI's interactive onboarding flow with the
// caller's terminal attached.
type Onboarder interface {
	RunOnboard(ctx context.Context) error
}

// Logger records shell-originated log lines. Matches the process
// manager's Log method.
type Logger func(kind, stream, text string)

// Manifest describes the embedded starter skill pack.
type Manifest struct {
	Version int             `toml:"version"`
	Skills  []ManifestSkill `toml:"skill"`
}

// ManifestSkill is one starter skill entry.
type ManifestSkill struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Run performs first-time setup: interactive onboarding when the nanobot
// config is missing, then starter skill installation. starterFS holds
// the embedded skill pack and may be nil to skip installation.
func Run(ctx context.Context, h *home.Home, ob Onboarder, starterFS fs.FS, log Logger) error {
	if err := Onboard(ctx, h, ob, log); err != nil {
		return err
	}
	installed, err := InstallStarterSkills(h, starterFS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: starter skills: %v\n", err)
		return nil
	}
	for _, name := range installed {
		fmt.Printf("  installed skill %s\n", name)
	}
	return nil
}

// Onboard runs the CLI onboarding flow if the nanobot config does not
// exist yet. Progress is logged to the gateway stream, mirroring where
// setup output lands once the children run.
func Onboard(ctx context.Context, h *home.Home, ob Onboarder, log Logger) error {
	path := h.ConfigPath()
	if h.ConfigExists() {
		return nil
	}
	log("gateway", "stdout", fmt.Sprintf("Config not found at %s. Running onboard...", path))

	err := ob.RunOnboard(ctx)
	if err == nil {
		log("gateway", "stdout", "Onboard completed")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := fmt.Sprintf("Onboard failed (exit code %d).", exitErr.ExitCode())
		log("gateway", "stderr", msg)
		return fmt.Errorf("%s", msg)
	}
	msg := fmt.Sprintf("Onboard failed: %v", err)
	log("gateway", "stderr", msg)
	return fmt.Errorf("%s", msg)
}

// InstallStarterSkills copies embedded starter skills into the workspace
// skills directory and returns the names it installed. Skills the user
// already has are left alone.
func InstallStarterSkills(h *home.Home, starterFS fs.FS) ([]string, error) {
	if starterFS == nil {
		return nil, nil
	}
	manifest, err := LoadManifest(starterFS)
	if err != nil {
		return nil, err
	}

	var installed []string
	for _, skill := range manifest.Skills {
		if err := home.ValidateSkillName(skill.Name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping starter skill %q: %v\n", skill.Name, err)
			continue
		}
		existing, err := h.ReadSkill(skill.Name)
		if err != nil {
			return installed, err
		}
		if existing.Exists {
			continue
		}
		content, err := fs.ReadFile(starterFS, filepath.ToSlash(filepath.Join(skill.Name, "SKILL.md")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: starter skill %q has no SKILL.md, skipping\n", skill.Name)
			continue
		}
		if err := h.SaveSkill(skill.Name, string(content)); err != nil {
			return installed, err
		}
		installed = append(installed, skill.Name)
	}
	return installed, nil
}

// LoadManifest parses the starter pack manifest from the embedded FS.
func LoadManifest(starterFS fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(starterFS, "manifest.toml")
	if err != nil {
		return nil, fmt.Errorf("reading starter manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing starter manifest: %w", err)
	}
	return &m, nil
}
