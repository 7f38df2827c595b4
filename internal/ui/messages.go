package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/ui/panels"
)

// Type aliases to the panels message types; panels is the source of truth.

// ProcessChangedMsg is sent when a child process starts or stops.
type ProcessChangedMsg = panels.ProcessChangedMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// YankMsg asks the app to copy text to the system clipboard.
type YankMsg = panels.YankMsg

// App-internal messages.

// AnimTickMsg drives the spinner animations.
type AnimTickMsg struct{}

// StatusTickMsg fires on the periodic refresh interval.
type StatusTickMsg struct{}

// StatusMsg delivers a fresh child status from a background query.
type StatusMsg struct {
	Status process.Status
}

const animInterval = 200 * time.Millisecond

func animTick() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return AnimTickMsg{}
	})
}

func statusTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return StatusTickMsg{}
	})
}
