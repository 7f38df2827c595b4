package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nanobot-ai/nanotop/internal/config"
	"github.com/nanobot-ai/nanotop/internal/home"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/runtime"
	"github.com/nanobot-ai/nanotop/internal/ui"
	"github.com/nanobot-ai/nanotop/internal/update"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			runVersion(update.DefaultRepo)
		case "update":
			if err := runUpdate(update.DefaultRepo); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		case "onboard":
			if err := runOnboard(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		case "cleanup":
			dryRun := hasFlag(os.Args[2:], "--dry-run")
			if err := runCleanup(cfg, dryRun); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		case "help", "--help", "-h":
			printUsage()
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
		return
	}

	if err := runShell(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runShell(cfg *config.Config) error {
	h := home.New(cfg.Nanobot.Home)

	rt := runtime.NewNanobot(runtime.Options{
		Python:         cfg.Nanobot.Python,
		Repo:           cfg.Nanobot.Repo,
		Home:           h.Dir(),
		GatewayVerbose: cfg.Nanobot.GatewayVerbose,
	})

	mgr := process.NewManager(process.NewStore(0), rt)
	mgr.SetEchoLogs(cfg.Shell.EchoLogs)
	mgr.SetScanExternal(cfg.Shell.ScanProcesses)
	mgr.SetStreaming(cfg.StreamLogsEnabled())

	switch {
	case !h.ConfigExists():
		mgr.Log(process.KindGateway, process.StreamStdout,
			fmt.Sprintf("Config not found at %s. Waiting for setup...", h.ConfigPath()))
	case cfg.AutostartEnabled():
		for _, kind := range []string{process.KindAgent, process.KindGateway} {
			if err := mgr.Start(kind); err != nil {
				mgr.Log(process.KindShell, process.StreamStderr,
					fmt.Sprintf("Could not start %s: %v", kind, err))
			}
		}
	}

	model := ui.NewApp(cfg, mgr, h)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	mgr.SetProgram(p)

	_, err := p.Run()

	// Children must not outlive the shell, whatever way it exits.
	mgr.Shutdown()

	if err != nil {
		return fmt.Errorf("run shell: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`nanotop: terminal shell for the nanobot agent

Usage:
  nanotop            launch the shell
  nanotop onboard    run first-time nanobot setup
  nanotop cleanup    remove stale session files (--dry-run to preview)
  nanotop version    print the version and check for updates
  nanotop update     install the latest release`)
}
