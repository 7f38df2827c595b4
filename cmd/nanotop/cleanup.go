package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nanobot-ai/nanotop/internal/config"
	"github.com/nanobot-ai/nanotop/internal/home"
)

const staleSessionAge = 7 * 24 * time.Hour

func runCleanup(cfg *config.Config, dryRun bool) error {
	h := home.New(cfg.Nanobot.Home)

	sessions, err := h.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	now := time.Now()
	removed := 0

	for _, s := range sessions {
		if s.Modified == 0 {
			continue
		}
		age := now.Sub(time.Unix(s.Modified, 0))
		if age <= staleSessionAge {
			continue
		}

		if dryRun {
			fmt.Printf("  [dry-run] would remove stale session: %s (age=%s)\n",
				s.Name, age.Round(time.Hour))
			removed++
			continue
		}

		if err := os.Remove(s.Path); err != nil {
			fmt.Fprintf(os.Stderr, "  warning: remove session %s: %v\n", s.Name, err)
			continue
		}
		fmt.Printf("  removed session: %s\n", s.Name)
		removed++
	}

	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	fmt.Printf("\n%sRemoved %d session files.\n", prefix, removed)
	return nil
}
