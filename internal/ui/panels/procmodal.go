package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
	"github.com/nanobot-ai/nanotop/internal/ui/text"
)

// processKinds is the fixed row order of the process modal.
var processKinds = []string{process.KindAgent, process.KindGateway}

// ProcessModal shows the supervised children with their running state
// and lets the user start or stop each one.
type ProcessModal struct {
	status   process.Status
	selected int
	width    int
	height   int
}

func NewProcessModal(status process.Status, screenW, screenH int) *ProcessModal {
	m := &ProcessModal{status: status}
	m.computeSize(screenW, screenH)
	return m
}

func (m *ProcessModal) computeSize(screenW, _ int) {
	m.width = screenW * 50 / 100
	if m.width < 40 {
		m.width = 40
	}
	if m.width > 60 {
		m.width = 60
	}
	// 2 borders + 1 header row + one row per child
	m.height = 2 + 1 + len(processKinds)
}

// SetStatus refreshes the running states shown in the modal.
func (m *ProcessModal) SetStatus(status process.Status) {
	m.status = status
}

func (m *ProcessModal) Update(msg tea.Msg) (*ProcessModal, tea.Cmd) {
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch msg2.String() {
	case "esc", "ctrl+c", "p", "q":
		return nil, func() tea.Msg { return CloseModalMsg{} }
	case "j", "down":
		if m.selected < len(processKinds)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		kind := processKinds[m.selected]
		return m, func() tea.Msg { return ToggleProcessMsg{Kind: kind} }
	case "a":
		return m, func() tea.Msg { return ToggleProcessMsg{Kind: process.KindAgent} }
	case "g":
		return m, func() tea.Msg { return ToggleProcessMsg{Kind: process.KindGateway} }
	}
	return m, nil
}

func (m *ProcessModal) View() string {
	innerWidth := m.width - 2
	var b strings.Builder

	header := fmt.Sprintf("  %-9s %s", "PROCESS", "STATE")
	b.WriteString(styles.TextSecondaryStyle.Render(text.Truncate(header, innerWidth)))
	b.WriteString("\n")

	for i, kind := range processKinds {
		running := m.running(kind)
		stateText := "stopped"
		if running {
			stateText = "running"
		}

		var line string
		if i == m.selected {
			plainLine := fmt.Sprintf("● %-9s %s", kind, stateText)
			plainLine = text.Truncate(plainLine, innerWidth)
			line = styles.SelectedRowStyle.Width(innerWidth).Render(plainLine)
		} else {
			dot := lipgloss.NewStyle().Foreground(styles.ChildStateColor(running)).Render("●")
			state := lipgloss.NewStyle().Foreground(styles.ChildStateColor(running)).Render(stateText)
			line = fmt.Sprintf("%s %-9s %s", dot, kind, state)
		}
		b.WriteString(line)
		if i < len(processKinds)-1 {
			b.WriteString("\n")
		}
	}

	keybinds := []border.Keybind{
		{Key: "↵", Label: " toggle"},
		{Key: "a", Label: "gent"},
		{Key: "g", Label: "ateway"},
		{Key: "Esc", Label: " close"},
	}
	return border.RenderPanel("Processes", b.String(), keybinds, m.width, m.height, true)
}

func (m *ProcessModal) running(kind string) bool {
	switch kind {
	case process.KindAgent:
		return m.status.Agent
	case process.KindGateway:
		return m.status.Gateway
	}
	return false
}
