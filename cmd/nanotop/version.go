package main

import (
	"fmt"

	"github.com/nanobot-ai/nanotop/internal/ui/panels"
	"github.com/nanobot-ai/nanotop/internal/update"
)

func runVersion(repo string) {
	fmt.Printf("nanotop version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build — update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(panels.Version, repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"nanotop update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}
