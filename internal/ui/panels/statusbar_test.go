package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/nanobot-ai/nanotop/internal/process"
)

func TestStatusBarChildNames(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	view := sb.View()
	if !strings.Contains(view, "agent") {
		t.Error("expected 'agent' child in status bar")
	}
	if !strings.Contains(view, "gateway") {
		t.Error("expected 'gateway' child in status bar")
	}
}

func TestStatusBarLogCount(t *testing.T) {
	sb := NewStatusBar(testStore("one", "two", "three"))
	sb.SetSize(120)

	view := sb.View()
	if !strings.Contains(view, "Logs: 3") {
		t.Error("expected 'Logs: 3' in status bar")
	}
}

func TestStatusBarLogCountSurvivesEviction(t *testing.T) {
	s := process.NewStore(2)
	for i := 0; i < 5; i++ {
		s.Append(process.LogEntry{Kind: process.KindAgent, Stream: process.StreamStdout, Text: "line"})
	}
	sb := NewStatusBar(s)
	sb.SetSize(120)

	// The bar shows lifetime totals, not the ring's current length.
	if !strings.Contains(sb.View(), "Logs: 5") {
		t.Error("expected lifetime log count in status bar")
	}
}

func TestStatusBarStreamIndicator(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	if !strings.Contains(sb.View(), "stream on") {
		t.Error("expected 'stream on' by default")
	}

	sb.SetStreaming(false)
	if !strings.Contains(sb.View(), "stream off") {
		t.Error("expected 'stream off' after disabling streaming")
	}
}

func TestStatusBarScanIndicator(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	if strings.Contains(sb.View(), "(scan)") {
		t.Error("expected no scan marker by default")
	}

	sb.SetScanning(true)
	if !strings.Contains(sb.View(), "(scan)") {
		t.Error("expected '(scan)' marker when process scanning is on")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(80)

	view := sb.View()
	if !strings.Contains(view, "?:help") {
		t.Error("expected '?:help' hint in status bar")
	}
}

func TestStatusBarVersion(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(80)

	view := sb.View()
	if !strings.Contains(view, "nanotop") {
		t.Error("expected 'nanotop' in status bar")
	}
}

func TestStatusBarSpinnerOnlyWhileRunning(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	if strings.Contains(sb.View(), statusSpinnerFrames[0]) {
		t.Error("expected no spinner while both children are stopped")
	}

	sb.SetStatus(process.Status{Agent: true})
	if !strings.Contains(sb.View(), statusSpinnerFrames[0]) {
		t.Error("expected spinner while the agent is running")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	sb.SetFlash("Copied")
	if !strings.Contains(sb.View(), "Copied") {
		t.Error("expected flash message in status bar")
	}

	sb.SetFlashWithLevel("Copy failed", FlashError)
	if !strings.Contains(sb.View(), "✗") {
		t.Error("expected error icon for error flash")
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "Copy failed") {
		t.Error("expected flash cleared")
	}
}

func TestStatusBarFlashExpires(t *testing.T) {
	sb := NewStatusBar(testStore())
	sb.SetSize(120)

	sb.flash = "stale message"
	sb.flashUntil = time.Now().Add(-time.Second)
	if strings.Contains(sb.View(), "stale message") {
		t.Error("expected expired flash to be hidden")
	}
}
