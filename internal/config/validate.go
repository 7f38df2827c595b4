package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run; errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Nanobot.SessionID == "" {
		errs = append(errs, "nanobot.session_id must not be empty")
	}

	if cfg.Shell.RefreshMS < 100 || cfg.Shell.RefreshMS > 60000 {
		errs = append(errs, fmt.Sprintf("shell.refresh_ms %d must be between 100 and 60000", cfg.Shell.RefreshMS))
	}

	if cfg.UI.LogScrollSpeed < 1 || cfg.UI.LogScrollSpeed > 20 {
		errs = append(errs, fmt.Sprintf("ui.log_scroll_speed %d must be between 1 and 20", cfg.UI.LogScrollSpeed))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
