package main

import (
	"fmt"

	"github.com/nanobot-ai/nanotop/internal/ui/panels"
	"github.com/nanobot-ai/nanotop/internal/update"
)

func runUpdate(repo string) error {
	if panels.Version == "dev" {
		fmt.Println("Development build — update check skipped.")
		return nil
	}

	fmt.Println("Checking for updates...")
	rel, err := update.CheckForUpdate(panels.Version, repo)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	if rel == nil {
		fmt.Println("You are up to date.")
		return nil
	}

	fmt.Printf("Updating to v%s...\n", rel.Version)
	applied, err := update.Apply(panels.Version, repo)
	if err != nil {
		return err
	}

	fmt.Printf("Updated to v%s. Restart nanotop to use the new version.\n", applied.Version)
	return nil
}
