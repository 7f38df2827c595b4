package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nanobot-ai/nanotop/internal/home"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
)

// transcriptLimit caps how many messages are loaded from a session file.
const transcriptLimit = 200

// TranscriptModal shows the tail of one session transcript in a
// scrollable overlay. Messages are loaded once when the modal opens.
type TranscriptModal struct {
	name     string
	messages []home.SessionMessage
	loadErr  error
	viewport viewport.Model
	width    int
	height   int
	gTap     DoubleTap
}

func NewTranscriptModal(h *home.Home, name string, screenW, screenH int) *TranscriptModal {
	m := &TranscriptModal{
		name:     name,
		viewport: viewport.New(0, 0),
		gTap:     NewDoubleTap(gTapIDTranscript),
	}
	m.messages, m.loadErr = h.ReadSession(name, transcriptLimit, 0, "")
	m.SetSize(screenW, screenH)
	m.viewport.GotoBottom()
	return m
}

func (m *TranscriptModal) SetSize(screenW, screenH int) {
	m.width = screenW * 80 / 100
	m.height = screenH * 80 / 100
	if m.width < 40 {
		m.width = 40
	}
	if m.height < 10 {
		m.height = 10
	}
	m.viewport.Width = m.width - 2
	m.viewport.Height = m.height - 2
	m.viewport.SetContent(m.renderContent())
}

func (m *TranscriptModal) Update(msg tea.Msg) (*TranscriptModal, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		m.gTap.HandleExpiry(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "y":
			if text := m.plainTranscript(); text != "" {
				return m, func() tea.Msg { return YankMsg{Text: text} }
			}
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "g":
			fired, cmd := m.gTap.Check()
			if fired {
				m.viewport.GotoTop()
				return m, nil
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *TranscriptModal) View() string {
	title := "Session: " + strings.TrimSuffix(m.name, ".jsonl")
	keybinds := []border.Keybind{
		{Key: "j/k", Label: " scroll"},
		{Key: "g", Label: "g/G jump"},
		{Key: "y", Label: "ank"},
		{Key: "Esc", Label: " close"},
	}
	return border.RenderPanel(title, m.viewport.View(), keybinds, m.width, m.height, true)
}

func (m *TranscriptModal) renderContent() string {
	if m.loadErr != nil {
		return styles.TextDimStyle.Render("Could not read session: " + m.loadErr.Error())
	}
	if len(m.messages) == 0 {
		return styles.TextDimStyle.Render("No messages in this session.")
	}

	bodyStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(m.viewport.Width)

	var b strings.Builder
	for i, msg := range m.messages {
		role := lipgloss.NewStyle().Foreground(roleColor(msg.Role)).Bold(true).Render(msg.Role)
		b.WriteString(role)
		if msg.CreatedAt != "" && msg.CreatedAt != "unknown" {
			b.WriteString(" " + styles.TextDimStyle.Render(msg.CreatedAt))
		}
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(msg.Content))
		if i < len(m.messages)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// plainTranscript renders the loaded messages without styling, for yanking.
func (m *TranscriptModal) plainTranscript() string {
	var b strings.Builder
	for i, msg := range m.messages {
		b.WriteString(msg.Role + ": " + msg.Content)
		if i < len(m.messages)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func roleColor(role string) lipgloss.AdaptiveColor {
	switch role {
	case "user":
		return styles.Accent
	case "assistant":
		return styles.StatusRunning
	default:
		return styles.TextSecondary
	}
}
