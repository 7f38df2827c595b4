package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapLogView creates a tea.Model adapter around a LogView for teatest use.
func wrapLogView(lv *LogView) tea.Model {
	return panelAdapter{
		view: func() string { return lv.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newLV, cmd := lv.Update(msg)
			*lv = newLV
			return cmd
		},
	}
}

// wrapSessions creates a tea.Model adapter around a Sessions for teatest use.
func wrapSessions(p *Sessions) tea.Model {
	return panelAdapter{
		view: func() string { return p.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newP, cmd := p.Update(msg)
			*p = newP
			return cmd
		},
	}
}

// wrapChat creates a tea.Model adapter around a Chat for teatest use.
func wrapChat(c *Chat) tea.Model {
	return panelAdapter{
		view: func() string { return c.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newC, cmd := c.Update(msg)
			*c = newC
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
