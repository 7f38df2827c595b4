package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
	"github.com/nanobot-ai/nanotop/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	store      *process.Store
	status     process.Status
	streaming  bool
	scanning   bool
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(store *process.Store) StatusBar {
	return StatusBar{store: store, streaming: true}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	// Build sections
	appName := "nanotop " + Version
	if s.status.Agent || s.status.Gateway {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		appName = spinner + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	children := childDot("agent", s.status.Agent) + " " + childDot("gateway", s.status.Gateway)
	if s.scanning {
		children += " " + styles.TextDimStyle.Render("(scan)")
	}

	logCount := styles.TextSecondaryStyle.Render(
		fmt.Sprintf("Logs: %s", text.FormatCount(int(s.store.TotalWritten()))),
	)

	streamStr := lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render("stream on")
	if !s.streaming {
		streamStr = lipgloss.NewStyle().Foreground(styles.StatusWarning).Render("stream off")
	}

	helpHint := styles.TextSecondaryStyle.Render("?:help")

	left := " " + version + sep + children + sep + logCount + sep + streamStr

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := helpHint + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func childDot(name string, running bool) string {
	dot := lipgloss.NewStyle().Foreground(styles.ChildStateColor(running)).Render("●")
	return dot + " " + styles.TextSecondaryStyle.Render(name)
}

// SetStatus updates the child running states shown in the bar.
func (s *StatusBar) SetStatus(st process.Status) {
	s.status = st
}

// SetStreaming updates the live log forwarding indicator.
func (s *StatusBar) SetStreaming(enabled bool) {
	s.streaming = enabled
}

// SetScanning marks whether Status falls back to a system process scan.
func (s *StatusBar) SetScanning(enabled bool) {
	s.scanning = enabled
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
