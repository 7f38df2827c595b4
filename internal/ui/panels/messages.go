package panels

import "github.com/nanobot-ai/nanotop/internal/home"

// ProcessChangedMsg is sent when a child process starts or stops.
type ProcessChangedMsg struct{}

// CloseModalMsg signals that the active modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// YankMsg asks the app to copy Text to the system clipboard.
type YankMsg struct {
	Text string
}

// SendChatMsg carries a prompt submitted from the chat panel.
type SendChatMsg struct {
	Text string
}

// ChatRepliedMsg reports the outcome of a chat round trip.
type ChatRepliedMsg struct {
	Reply string
	Err   error
}

// OpenTranscriptMsg asks the app to open the transcript viewer for a
// session file.
type OpenTranscriptMsg struct {
	Name string
}

// ToggleProcessMsg asks the app to start or stop the named child.
type ToggleProcessMsg struct {
	Kind string
}

// ProcessToggledMsg reports the outcome of a start or stop request.
type ProcessToggledMsg struct {
	Kind    string
	Started bool
	Err     error
}

// SessionsLoadedMsg delivers a fresh session listing from disk.
type SessionsLoadedMsg struct {
	Sessions []home.Session
	Err      error
}
