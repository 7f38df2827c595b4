package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nanobot-ai/nanotop/internal/detect"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
)

// SetupNotice is shown at startup when no nanobot config exists yet. It
// reports what was detected on the machine and points at the onboard
// command. Detection runs once, when the notice is created.
type SetupNotice struct {
	configPath string
	detected   *detect.Result
	width      int
	height     int
}

func NewSetupNotice(configPath string, opts detect.Options) *SetupNotice {
	return &SetupNotice{
		configPath: configPath,
		detected:   detect.Detect(opts),
		width:      58,
		height:     14,
	}
}

func (m *SetupNotice) Update(msg tea.Msg) (*SetupNotice, tea.Cmd) {
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch msg2.String() {
	case "esc", "enter", "q":
		return nil, func() tea.Msg { return CloseModalMsg{} }
	}
	return m, nil
}

func (m *SetupNotice) View() string {
	var b strings.Builder

	b.WriteString(styles.TextPrimaryStyle.Render("No nanobot config found."))
	b.WriteString("\n")
	b.WriteString(styles.TextDimStyle.Render(m.configPath))
	b.WriteString("\n\n")

	b.WriteString(styles.TextPrimaryStyle.Render("Detected:"))
	b.WriteString("\n")
	b.WriteString(detectLine("Python", m.detected.Python, m.detected.PythonSource))
	b.WriteString("\n")
	b.WriteString(detectLine("Repo", m.detected.Repo, ""))
	b.WriteString("\n")
	b.WriteString(detectLine("CLI", m.detected.CLI, ""))
	b.WriteString("\n")
	b.WriteString(detectLine("Version", m.detected.Version, ""))
	b.WriteString("\n\n")

	if m.detected.Installed() {
		b.WriteString(styles.TextSecondaryStyle.Render("Run "))
		b.WriteString(styles.SelectedOptionStyle.Render("nanotop onboard"))
		b.WriteString(styles.TextSecondaryStyle.Render(" to set up."))
	} else {
		b.WriteString(styles.TextSecondaryStyle.Render("Install nanobot first, then run "))
		b.WriteString(styles.SelectedOptionStyle.Render("nanotop onboard"))
		b.WriteString(styles.TextSecondaryStyle.Render("."))
	}

	kb := []border.Keybind{{Key: "Esc", Label: " dismiss"}}
	return border.RenderPanel("Setup nanobot", b.String(), kb, m.width, m.height, true)
}

func detectLine(label, value, source string) string {
	if value == "" {
		return styles.TextDimStyle.Render("  " + label + ": not found")
	}
	line := styles.TextSecondaryStyle.Render("  "+label+": ") +
		styles.TextPrimaryStyle.Render(value)
	if source != "" {
		line += styles.TextDimStyle.Render(" (" + source + ")")
	}
	return line
}
