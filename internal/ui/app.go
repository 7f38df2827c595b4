package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nanobot-ai/nanotop/internal/config"
	"github.com/nanobot-ai/nanotop/internal/detect"
	"github.com/nanobot-ai/nanotop/internal/home"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/ui/clipboard"
	"github.com/nanobot-ai/nanotop/internal/ui/layout"
	"github.com/nanobot-ai/nanotop/internal/ui/panels"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
)

const (
	panelSessions = 0
	panelLogView  = 1
	panelChat     = 2
	numPanels     = 3
)

// chatTimeout bounds one agent round trip.
const chatTimeout = 2 * time.Minute

type App struct {
	config       *config.Config
	manager      *process.Manager
	home         *home.Home
	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	sessions     panels.Sessions
	logView      panels.LogView
	chat         panels.Chat
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	procModal    *panels.ProcessModal
	transcript   *panels.TranscriptModal
	setupNotice  *panels.SetupNotice
	keys         KeyMap
	status       process.Status
	ready        bool
}

func NewApp(cfg *config.Config, mgr *process.Manager, h *home.Home) App {
	sp := panels.NewSessions()
	sp.SetFocused(true)

	lv := panels.NewLogView(mgr.Store())
	lv.SetScrollSpeed(cfg.UI.LogScrollSpeed)

	sb := panels.NewStatusBar(mgr.Store())
	sb.SetStreaming(mgr.StreamingEnabled())
	sb.SetScanning(cfg.Shell.ScanProcesses)

	a := App{
		config:    cfg,
		manager:   mgr,
		home:      h,
		sessions:  sp,
		logView:   lv,
		chat:      panels.NewChat(),
		statusBar: sb,
		keys:      DefaultKeyMap(),
	}

	if !h.ConfigExists() {
		a.setupNotice = panels.NewSetupNotice(h.ConfigPath(), detect.Options{
			Python: cfg.Nanobot.Python,
			Repo:   cfg.Nanobot.Repo,
		})
	}

	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForChanges(a.manager.Changes()),
		a.queryStatus(),
		a.reloadSessions(),
		animTick(),
		statusTick(a.config.RefreshInterval()),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		if a.transcript != nil {
			a.transcript.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		a.procModal = nil
		a.transcript = nil
		a.setupNotice = nil
		return a, nil

	case ProcessChangedMsg:
		return a, tea.Batch(a.queryStatus(), listenForChanges(a.manager.Changes()))

	case AnimTickMsg:
		a.statusBar.Tick()
		a.chat.Tick()
		return a, animTick()

	case StatusTickMsg:
		return a, tea.Batch(
			a.queryStatus(),
			a.reloadSessions(),
			statusTick(a.config.RefreshInterval()),
		)

	case StatusMsg:
		a.status = msg.Status
		a.statusBar.SetStatus(msg.Status)
		a.logView.SetActive(msg.Status.Agent || msg.Status.Gateway)
		if a.procModal != nil {
			a.procModal.SetStatus(msg.Status)
		}
		return a, nil

	case panels.SessionsLoadedMsg:
		var cmd tea.Cmd
		a.sessions, cmd = a.sessions.Update(msg)
		return a, cmd

	case process.LogLineMsg:
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd

	case process.ProcessExitMsg:
		a.statusBar.SetFlashWithLevel(msg.Kind+" stream closed", panels.FlashWarning)
		return a, tea.Batch(a.queryStatus(), clearFlashLater())

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case YankMsg:
		cmd := a.copyToClipboard(msg.Text)
		return a, cmd

	case panels.SendChatMsg:
		return a, a.sendChat(msg.Text)

	case panels.ChatRepliedMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		if msg.Err != nil {
			a.statusBar.SetFlashWithLevel("Chat failed: "+msg.Err.Error(), panels.FlashError)
			return a, tea.Batch(cmd, clearFlashLater())
		}
		return a, cmd

	case panels.OpenTranscriptMsg:
		a.transcript = panels.NewTranscriptModal(a.home, msg.Name, a.width, a.height)
		return a, nil

	case panels.ToggleProcessMsg:
		return a, a.toggleProcess(msg.Kind)

	case panels.ProcessToggledMsg:
		switch {
		case msg.Err != nil:
			a.statusBar.SetFlashWithLevel(
				fmt.Sprintf("Could not start %s: %v", msg.Kind, msg.Err), panels.FlashError)
		case msg.Started:
			a.statusBar.SetFlashWithLevel(msg.Kind+" started", panels.FlashSuccess)
		default:
			a.statusBar.SetFlashWithLevel(msg.Kind+" stopped", panels.FlashInfo)
		}
		return a, tea.Batch(a.queryStatus(), clearFlashLater())

	case panels.GTimerExpiredMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		cmds = append(cmds, cmd)
		if a.transcript != nil {
			a.transcript, cmd = a.transcript.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if a.setupNotice != nil {
			var cmd tea.Cmd
			a.setupNotice, cmd = a.setupNotice.Update(msg)
			return a, cmd
		}
		if a.helpOverlay != nil {
			var cmd tea.Cmd
			*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
			return a, cmd
		}
		if a.procModal != nil {
			var cmd tea.Cmd
			a.procModal, cmd = a.procModal.Update(msg)
			return a, cmd
		}
		if a.transcript != nil {
			var cmd tea.Cmd
			a.transcript, cmd = a.transcript.Update(msg)
			return a, cmd
		}

		// Panel input modes swallow keys before global bindings apply
		if a.focusedPanel == panelLogView && a.logView.ConsumesKeys() {
			return a.routeKey(msg)
		}
		if a.focusedPanel == panelSessions && a.sessions.FilterActive() {
			return a.routeKey(msg)
		}
		if a.focusedPanel == panelChat {
			switch msg.String() {
			case "ctrl+c":
				return a, tea.Quit
			case "tab":
				a.focusedPanel = (a.focusedPanel + 1) % numPanels
				a.updateFocusState()
				return a, nil
			case "esc":
				a.focusedPanel = panelLogView
				a.updateFocusState()
				return a, nil
			}
			return a.routeKey(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "tab":
			a.focusedPanel = (a.focusedPanel + 1) % numPanels
			a.updateFocusState()
			return a, nil
		case "1":
			a.focusedPanel = panelSessions
			a.updateFocusState()
			return a, nil
		case "2":
			a.focusedPanel = panelLogView
			a.updateFocusState()
			return a, nil
		case "3":
			a.focusedPanel = panelChat
			a.updateFocusState()
			return a, nil
		case "h", "left":
			// Spatial: in top row, move between sessions and log view
			if a.focusedPanel == panelLogView {
				a.focusedPanel = panelSessions
				a.updateFocusState()
			}
			return a, nil
		case "l", "right":
			// Spatial: in top row, move between sessions and log view
			if a.focusedPanel == panelSessions {
				a.focusedPanel = panelLogView
				a.updateFocusState()
			}
			return a, nil
		case "?":
			if a.helpOverlay == nil {
				a.helpOverlay = panels.NewHelpOverlay()
			} else {
				a.helpOverlay = nil
			}
			return a, nil
		case "p":
			a.procModal = panels.NewProcessModal(a.status, a.width, a.height)
			return a, nil
		case "s":
			on := !a.manager.StreamingEnabled()
			a.manager.SetStreaming(on)
			a.statusBar.SetStreaming(on)
			if on {
				a.logView.Refresh()
				a.statusBar.SetFlash("Streaming on")
			} else {
				a.statusBar.SetFlash("Streaming paused")
			}
			return a, clearFlashLater()
		case "r":
			a.logView.Refresh()
			return a, tea.Batch(a.queryStatus(), a.reloadSessions())
		}

		return a.routeKey(msg)
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	// Assemble layout: top row (sessions | logview), chat row, status bar
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, a.sessions.View(), a.logView.View())
	fullLayout := lipgloss.JoinVertical(lipgloss.Left, topRow, a.chat.View(), a.statusBar.View())

	if modalView := a.activeModalView(); modalView != "" {
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modalView,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

func (a App) activeModalView() string {
	switch {
	case a.setupNotice != nil:
		return a.setupNotice.View()
	case a.helpOverlay != nil:
		return a.helpOverlay.View()
	case a.procModal != nil:
		return a.procModal.View()
	case a.transcript != nil:
		return a.transcript.View()
	}
	return ""
}

func (a App) modalActive() bool {
	return a.setupNotice != nil || a.helpOverlay != nil ||
		a.procModal != nil || a.transcript != nil
}

func (a App) Manager() *process.Manager {
	return a.manager
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focusedPanel {
	case panelSessions:
		var cmd tea.Cmd
		a.sessions, cmd = a.sessions.Update(msg)
		return a, cmd
	case panelLogView:
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd
	case panelChat:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.modalActive() || a.layout.TooSmall {
		return a, nil
	}

	// Wheel scrolling goes to the log view when the pointer is over it
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if a.inLogView(msg.X, msg.Y) {
			var cmd tea.Cmd
			a.logView, cmd = a.logView.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	relX := msg.X - a.layout.SessionsWidth
	relY := msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		switch {
		case a.inLogView(msg.X, msg.Y):
			a.focusedPanel = panelLogView
			a.updateFocusState()
			a.logView.StartMouseSelection(relX, relY)
		case msg.Y < a.layout.SessionsHeight:
			a.focusedPanel = panelSessions
			a.updateFocusState()
			a.logView.CancelMouseSelection()
		case msg.Y < a.layout.SessionsHeight+a.layout.ChatHeight:
			a.focusedPanel = panelChat
			a.updateFocusState()
			a.logView.CancelMouseSelection()
		}
		return a, nil

	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			a.logView.ExtendMouseSelection(relX, relY)
		}
		return a, nil

	case tea.MouseActionRelease:
		if text := a.logView.FinalizeMouseSelection(relX, relY); text != "" {
			cmd := a.copyToClipboard(text)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) inLogView(x, y int) bool {
	return x >= a.layout.SessionsWidth && y < a.layout.LogViewHeight
}

func (a *App) copyToClipboard(text string) tea.Cmd {
	if err := clipboard.Write(text); err != nil {
		a.statusBar.SetFlashWithLevel("Copy failed: "+err.Error(), panels.FlashError)
	} else {
		lineCount := strings.Count(text, "\n") + 1
		if lineCount > 1 {
			a.statusBar.SetFlashWithLevel(
				fmt.Sprintf("Copied %d lines", lineCount), panels.FlashSuccess)
		} else {
			a.statusBar.SetFlashWithLevel("Copied", panels.FlashSuccess)
		}
	}
	return clearFlashLater()
}

func (a App) sendChat(text string) tea.Cmd {
	mgr := a.manager
	sessionID := a.config.Nanobot.SessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		reply, err := mgr.SendMessage(ctx, text, sessionID)
		return panels.ChatRepliedMsg{Reply: reply, Err: err}
	}
}

func (a App) toggleProcess(kind string) tea.Cmd {
	mgr := a.manager
	running := a.kindRunning(kind)
	return func() tea.Msg {
		var err error
		if running {
			err = mgr.Stop(kind)
		} else {
			err = mgr.Start(kind)
		}
		return panels.ProcessToggledMsg{Kind: kind, Started: !running, Err: err}
	}
}

func (a App) kindRunning(kind string) bool {
	switch kind {
	case process.KindAgent:
		return a.status.Agent
	case process.KindGateway:
		return a.status.Gateway
	}
	return false
}

func (a App) queryStatus() tea.Cmd {
	mgr := a.manager
	return func() tea.Msg {
		return StatusMsg{Status: mgr.Status()}
	}
}

func (a App) reloadSessions() tea.Cmd {
	h := a.home
	return func() tea.Msg {
		sessions, err := h.ListSessions()
		return panels.SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (a *App) propagateSizes() {
	l := a.layout
	a.sessions.SetSize(l.SessionsWidth, l.SessionsHeight)
	a.logView.SetSize(l.LogViewWidth, l.LogViewHeight)
	a.chat.SetSize(l.ChatWidth, l.ChatHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.sessions.SetFocused(a.focusedPanel == panelSessions)
	a.logView.SetFocused(a.focusedPanel == panelLogView)
	a.chat.SetFocused(a.focusedPanel == panelChat)
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return ProcessChangedMsg{}
	}
}
