package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nanobot-ai/nanotop/internal/detect"
)

func newTestNotice(r *detect.Result) *SetupNotice {
	return &SetupNotice{
		configPath: "/home/alice/.nanobot/config.json",
		detected:   r,
		width:      58,
		height:     14,
	}
}

func TestSetupNoticeInstalledView(t *testing.T) {
	m := newTestNotice(&detect.Result{
		Python:       "/usr/bin/python3",
		PythonSource: "path",
		Version:      "0.52.1",
	})

	view := m.View()
	if !strings.Contains(view, "No nanobot config found.") {
		t.Error("expected missing-config headline")
	}
	if !strings.Contains(view, "/home/alice/.nanobot/config.json") {
		t.Error("expected config path in notice")
	}
	if !strings.Contains(view, "/usr/bin/python3") {
		t.Error("expected detected interpreter in notice")
	}
	if !strings.Contains(view, "(path)") {
		t.Error("expected interpreter source in notice")
	}
	if !strings.Contains(view, "0.52.1") {
		t.Error("expected detected version in notice")
	}
	if !strings.Contains(view, "to set up.") {
		t.Error("expected onboard hint when nanobot is installed")
	}
}

func TestSetupNoticeNotInstalledView(t *testing.T) {
	m := newTestNotice(&detect.Result{})

	view := m.View()
	if !strings.Contains(view, "not found") {
		t.Error("expected 'not found' rows for missing pieces")
	}
	if !strings.Contains(view, "Install nanobot first") {
		t.Error("expected install hint when nothing was detected")
	}
}

func TestSetupNoticeClose(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		m := newTestNotice(&detect.Result{})
		closed, cmd := m.Update(key)
		if closed != nil {
			t.Errorf("expected %s to dismiss the notice", key.String())
		}
		if cmd == nil {
			t.Fatalf("expected close cmd from %s", key.String())
		}
		if _, ok := cmd().(CloseModalMsg); !ok {
			t.Errorf("expected CloseModalMsg from %s, got %T", key.String(), cmd())
		}
	}
}

func TestSetupNoticeIgnoresOtherKeys(t *testing.T) {
	m := newTestNotice(&detect.Result{})

	kept, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if kept == nil {
		t.Error("expected notice to stay open on unrelated key")
	}
	if cmd != nil {
		t.Error("expected no cmd on unrelated key")
	}
}
