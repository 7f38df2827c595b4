package process

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/nanobot-ai/nanotop/internal/runtime"
)

// LogLineMsg notifies the UI that a log entry was appended while
// streaming was enabled.
type LogLineMsg struct {
	Entry LogEntry
}

// ProcessExitMsg notifies the UI that a child process stream closed.
type ProcessExitMsg struct {
	Kind string
}

// Status holds the running state of both children.
type Status struct {
	Agent   bool
	Gateway bool
}

// ManagedProcess is a live child handle tracked by the manager.
type ManagedProcess struct {
	Kind    string
	Process *runtime.Process
	cancel  context.CancelFunc
}

// Manager supervises the agent and gateway children. At most one
// managed handle exists per kind, and all handle state lives behind a
// single mutex. Stopping is best effort: handle kills are followed by
// a pattern sweep so orphans from earlier shells are cleared too.
type Manager struct {
	store *Store
	rt    runtime.Runtime

	mu           sync.Mutex
	processes    map[string]*ManagedProcess
	program      *tea.Program
	echoLogs     bool
	scanExternal bool

	changeCh chan struct{}
}

// NewManager creates a supervisor over the given log store and runtime.
func NewManager(store *Store, rt runtime.Runtime) *Manager {
	return &Manager{
		store:     store,
		rt:        rt,
		processes: make(map[string]*ManagedProcess),
		changeCh:  make(chan struct{}, 1),
	}
}

// SetProgram sets the bubbletea program that receives log and exit
// messages. Until set, messages are dropped.
func (m *Manager) SetProgram(p *tea.Program) {
	m.mu.Lock()
	m.program = p
	m.mu.Unlock()
}

// SetEchoLogs mirrors every log entry to stdout, for running the shell
// with its own output captured.
func (m *Manager) SetEchoLogs(enabled bool) {
	m.mu.Lock()
	m.echoLogs = enabled
	m.mu.Unlock()
}

// SetScanExternal lets Status fall back to a system-wide process scan
// for children this shell does not manage.
func (m *Manager) SetScanExternal(enabled bool) {
	m.mu.Lock()
	m.scanExternal = enabled
	m.mu.Unlock()
}

// Store returns the shared log store.
func (m *Manager) Store() *Store {
	return m.store
}

// Changes returns a channel that signals after lifecycle transitions.
// The UI re-arms a listener on it to refresh the status bar.
func (m *Manager) Changes() <-chan struct{} {
	return m.changeCh
}

// Start launches the child for kind. When a live handle already
// exists the call is a no-op, so repeated starts cannot double-spawn.
// Spawn failures are logged to the kind's stderr stream and returned.
func (m *Manager) Start(kind string) error {
	m.mu.Lock()
	switch kind {
	case KindAgent, KindGateway:
		if m.refreshLocked(kind) {
			m.mu.Unlock()
			return nil
		}
	default:
		m.mu.Unlock()
		return fmt.Errorf("unknown process %q", kind)
	}
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	proc, err := m.rt.Start(ctx, kind)
	if err != nil {
		cancel()
		m.emitLog(kind, StreamStderr, fmt.Sprintf("Failed to start %s: %v", kind, err))
		return err
	}

	go m.readStream(kind, StreamStdout, proc.Stdout)
	go m.readStream(kind, StreamStderr, proc.Stderr)

	m.mu.Lock()
	m.processes[kind] = &ManagedProcess{Kind: kind, Process: proc, cancel: cancel}
	m.mu.Unlock()

	m.emitLog(kind, StreamStdout, startedNotice(kind))
	m.notify()
	return nil
}

// Stop terminates the child for kind. The managed handle is killed
// along with its process tree, then a pattern sweep clears matching
// processes this shell never managed. Kill failures are ignored; the
// only error is an unknown kind.
func (m *Manager) Stop(kind string) error {
	switch kind {
	case KindAgent, KindGateway:
	default:
		return fmt.Errorf("unknown process %q", kind)
	}

	m.mu.Lock()
	mp := m.processes[kind]
	delete(m.processes, kind)
	m.mu.Unlock()

	if mp != nil {
		m.kill(mp)
	}
	m.rt.KillByPattern(kind)
	m.notify()
	return nil
}

// StopAll terminates both children's managed handles.
func (m *Manager) StopAll() {
	m.mu.Lock()
	procs := make([]*ManagedProcess, 0, len(m.processes))
	for kind, mp := range m.processes {
		delete(m.processes, kind)
		procs = append(procs, mp)
	}
	m.mu.Unlock()

	for _, mp := range procs {
		m.kill(mp)
	}
	m.notify()
}

// Shutdown stops both children and sweeps for orphaned processes.
// Called once when the shell exits.
func (m *Manager) Shutdown() {
	m.StopAll()
	m.rt.KillByPattern(KindAgent)
	m.rt.KillByPattern(KindGateway)
}

// Status reports the running state of both children. A kind counts as
// running when a live managed handle exists or, with external scanning
// enabled, when a matching process is found on the system.
func (m *Manager) Status() Status {
	m.mu.Lock()
	agent := m.refreshLocked(KindAgent)
	gateway := m.refreshLocked(KindGateway)
	scan := m.scanExternal
	m.mu.Unlock()

	if scan {
		if !agent {
			agent = m.rt.FindByPattern(KindAgent)
		}
		if !gateway {
			gateway = m.rt.FindByPattern(KindGateway)
		}
	}
	return Status{Agent: agent, Gateway: gateway}
}

// Logs returns a snapshot of the shared log history, oldest first.
func (m *Manager) Logs() []LogEntry {
	return m.store.Snapshot()
}

// Log records a shell-originated line in a kind's log stream, for
// messages about the children rather than from them.
func (m *Manager) Log(kind, stream, text string) {
	m.emitLog(kind, stream, text)
}

// SetStreaming toggles live log forwarding to the UI. Entries appended
// while streaming is off are not replayed when it comes back on.
func (m *Manager) SetStreaming(enabled bool) {
	m.store.SetStreaming(enabled)
}

// StreamingEnabled reports whether log entries are forwarded live.
func (m *Manager) StreamingEnabled() bool {
	return m.store.StreamingEnabled()
}

// SendMessage runs a one-shot agent turn and logs the exchange to the
// agent stream. The reply is returned with ANSI styling removed.
func (m *Manager) SendMessage(ctx context.Context, message, sessionID string) (string, error) {
	m.emitLog(KindAgent, StreamStdout, "User: "+truncLine(message, 200))

	combined, err := m.rt.RunAgentMessage(ctx, message, sessionID)
	if err != nil {
		return "", err
	}
	cleaned := ansi.Strip(combined)
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			m.emitLog(KindAgent, StreamStdout, line)
		}
	}
	return strings.TrimSpace(cleaned), nil
}

// refreshLocked reports whether the managed handle for kind is still
// alive, clearing the handle when its process has exited. Caller must
// hold mu.
func (m *Manager) refreshLocked(kind string) bool {
	mp, ok := m.processes[kind]
	if !ok {
		return false
	}
	select {
	case <-mp.Process.Done:
		if mp.cancel != nil {
			mp.cancel()
		}
		delete(m.processes, kind)
		return false
	default:
		return true
	}
}

// kill terminates a managed handle and its process tree. Best effort.
func (m *Manager) kill(mp *ManagedProcess) {
	if mp.Process != nil {
		if mp.Process.Cmd != nil && mp.Process.Cmd.Process != nil {
			_ = mp.Process.Cmd.Process.Kill()
		}
		m.rt.TerminateTree(mp.Process.PID)
	}
	if mp.cancel != nil {
		mp.cancel()
	}
}

// emitLog records a line in the store and forwards it to the UI when
// streaming is enabled. With echo on, the line is mirrored to stdout.
func (m *Manager) emitLog(kind, stream, text string) {
	m.mu.Lock()
	echo := m.echoLogs
	p := m.program
	m.mu.Unlock()

	if echo {
		fmt.Printf("[%s][%s] %s\n", kind, stream, text)
	}
	entry := LogEntry{Kind: kind, Stream: stream, Text: text}
	if m.store.Append(entry) && p != nil {
		p.Send(LogLineMsg{Entry: entry})
	}
}

// sendExit pushes a process exit message to the UI, if attached.
func (m *Manager) sendExit(kind string) {
	m.mu.Lock()
	p := m.program
	m.mu.Unlock()
	if p != nil {
		p.Send(ProcessExitMsg{Kind: kind})
	}
}

// notify signals the change channel without blocking.
func (m *Manager) notify() {
	select {
	case m.changeCh <- struct{}{}:
	default:
	}
}

func startedNotice(kind string) string {
	switch kind {
	case KindAgent:
		return "Agent started"
	case KindGateway:
		return "Gateway started"
	}
	return ""
}

// truncLine shortens s to max runes, marking the cut with an ellipsis.
func truncLine(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
