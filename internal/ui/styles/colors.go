package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nanobot-ai/nanotop/internal/process"
)

// Semantic colors as AdaptiveColor{Light, Dark}
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusStopped = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	Accent = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}

	SelectedOption = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}

	SelectionBg = lipgloss.AdaptiveColor{Light: "#c8d8f0", Dark: "#283457"}
)

// KindColor returns the tag color for a log entry kind.
func KindColor(kind string) lipgloss.AdaptiveColor {
	switch kind {
	case process.KindAgent:
		return StatusRunning
	case process.KindGateway:
		return Accent
	default:
		return TextSecondary
	}
}

// ChildStateColor returns the status color for a supervised child.
func ChildStateColor(running bool) lipgloss.AdaptiveColor {
	if running {
		return StatusSuccess
	}
	return StatusStopped
}
