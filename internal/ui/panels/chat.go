package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
)

// Chat is the one-line prompt panel for talking to the agent. Submits
// are serialized: while a reply is pending the input is replaced by a
// spinner and further sends are ignored.
type Chat struct {
	input    textinput.Model
	width    int
	height   int
	focused  bool
	busy     bool
	tickStep int
}

func NewChat() Chat {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Message the agent..."
	ti.CharLimit = 2048
	return Chat{input: ti}
}

func (c Chat) Update(msg tea.Msg) (Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case ChatRepliedMsg:
		c.busy = false
		return c, nil
	case tea.KeyMsg:
		if c.busy {
			return c, nil
		}
		if msg.String() == "enter" {
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return c, nil
			}
			c.input.SetValue("")
			c.busy = true
			return c, func() tea.Msg { return SendChatMsg{Text: text} }
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c Chat) View() string {
	title := "[3] " + styles.TitleStyle.Render("Chat")

	var keybinds []border.Keybind
	var content string
	if c.busy {
		frame := statusSpinnerFrames[c.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		content = spinner + " " + styles.TextDimStyle.Render("Waiting for reply...")
	} else {
		content = c.input.View()
		if c.focused {
			keybinds = []border.Keybind{{Key: "↵", Label: " send"}}
		}
	}

	return border.RenderPanel(title, content, keybinds, c.width, c.height, c.focused)
}

func (c *Chat) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.input.Width = w - 6
}

func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// Busy reports whether a reply is still pending.
func (c Chat) Busy() bool {
	return c.busy
}

// Tick advances the waiting spinner.
func (c *Chat) Tick() {
	c.tickStep++
}
