package main

import (
	"context"
	"fmt"

	"github.com/nanobot-ai/nanotop/internal/config"
	"github.com/nanobot-ai/nanotop/internal/home"
	"github.com/nanobot-ai/nanotop/internal/runtime"
	"github.com/nanobot-ai/nanotop/internal/setup"
	"github.com/nanobot-ai/nanotop/skills"
)

func runOnboard(cfg *config.Config) error {
	h := home.New(cfg.Nanobot.Home)

	rt := runtime.NewNanobot(runtime.Options{
		Python: cfg.Nanobot.Python,
		Repo:   cfg.Nanobot.Repo,
		Home:   h.Dir(),
	})

	logLine := func(kind, stream, text string) {
		fmt.Println(text)
	}
	if err := setup.Run(context.Background(), h, rt, skills.FS, logLine); err != nil {
		return err
	}

	fmt.Println("\nnanotop onboard complete.")
	return nil
}
