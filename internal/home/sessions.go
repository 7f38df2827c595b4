package home

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// historyFile holds the live chat transcript. It is read through
// ReadHistory and hidden from the session list.
const historyFile = "cli_direct.jsonl"

// ErrInvalidSessionName is returned for session names containing path
// separators.
var ErrInvalidSessionName = fmt.Errorf("invalid session name")

// ErrLineOutOfRange is returned when a session line deletion targets a
// line the file does not have.
var ErrLineOutOfRange = fmt.Errorf("line out of range")

// Session describes one transcript file in the sessions directory.
type Session struct {
	Name     string
	Path     string
	Size     int64
	Modified int64 // mtime in unix seconds, 0 when unknown
}

// SessionMessage is one parsed row of a session transcript.
type SessionMessage struct {
	ID        string
	Role      string
	Content   string
	CreatedAt string
	Line      int // zero-based line index in the transcript file
}

func validateSessionName(name string) error {
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidSessionName
	}
	return nil
}

// ListSessions returns the session transcripts, most recently modified
// first. The live chat transcript is excluded. A missing sessions
// directory is not an error.
func (h *Home) ListSessions() ([]Session, error) {
	dir := h.SessionsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions dir: %w", err)
	}

	var sessions []Session
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == historyFile || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		s := Session{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}
		if info, infoErr := entry.Info(); infoErr == nil {
			s.Size = info.Size()
			s.Modified = info.ModTime().Unix()
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Modified > sessions[j].Modified
	})
	return sessions, nil
}

// ReadSession parses a session transcript and returns the last messages.
// Pagination counts back from the end: offset 0 returns the newest limit
// messages, offset limit the page before that. A non-empty query keeps
// only messages whose content contains it, case-insensitively.
func (h *Home) ReadSession(name string, limit, offset int, query string) ([]SessionMessage, error) {
	if err := validateSessionName(name); err != nil {
		return nil, err
	}
	return h.readSessionFile(name, limit, offset, query)
}

// ReadHistory returns the last messages of the live chat transcript.
func (h *Home) ReadHistory(limit, offset int) ([]SessionMessage, error) {
	return h.readSessionFile(historyFile, limit, offset, "")
}

func (h *Home) readSessionFile(name string, limit, offset int, query string) ([]SessionMessage, error) {
	if limit < 1 {
		limit = 1
	}
	data, err := os.ReadFile(filepath.Join(h.SessionsDir(), name))
	if err != nil {
		return nil, nil
	}

	var rows []SessionMessage
	lowerQuery := strings.ToLower(query)
	for idx, line := range splitLines(string(data)) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var val map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &val); err != nil {
			continue
		}
		// Rows tagged with _type are tool traffic, not messages.
		if _, ok := val["_type"]; ok {
			continue
		}
		content, _ := val["content"].(string)
		if content == "" {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(content), lowerQuery) {
			continue
		}
		role, ok := val["role"].(string)
		if !ok {
			role = "system"
		}
		createdAt := sessionTimestamp(val)
		rows = append(rows, SessionMessage{
			ID:        fmt.Sprintf("%s-%d", createdAt, idx),
			Role:      role,
			Content:   content,
			CreatedAt: createdAt,
			Line:      idx,
		})
	}

	total := len(rows)
	if offset >= total {
		return nil, nil
	}
	end := total - offset
	start := end - limit
	if start < 0 {
		start = 0
	}
	return rows[start:end], nil
}

// sessionTimestamp picks the first timestamp-ish field that is present.
// A present field that is not a string still wins the pick and resolves
// to "unknown".
func sessionTimestamp(val map[string]interface{}) string {
	for _, key := range []string{"timestamp", "created_at", "updated_at"} {
		if raw, ok := val[key]; ok {
			if s, isStr := raw.(string); isStr {
				return s
			}
			return "unknown"
		}
	}
	return "unknown"
}

// DeleteSessionLines removes the given zero-based lines from a session
// transcript. Every index must be in range; the file is rewritten with
// the surviving lines joined by newlines.
func (h *Home) DeleteSessionLines(name string, lines []int) error {
	if err := validateSessionName(name); err != nil {
		return err
	}
	path := filepath.Join(h.SessionsDir(), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading session %s: %w", name, err)
	}

	entries := splitLines(string(data))
	targets := append([]int(nil), lines...)
	sort.Ints(targets)

	for _, idx := range targets {
		if idx < 0 || idx >= len(entries) {
			return ErrLineOutOfRange
		}
	}
	// Walk back so earlier indexes stay valid while removing.
	for i := len(targets) - 1; i >= 0; i-- {
		if i < len(targets)-1 && targets[i] == targets[i+1] {
			continue
		}
		idx := targets[i]
		entries = append(entries[:idx], entries[idx+1:]...)
	}

	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", name, err)
	}
	return nil
}

// splitLines splits transcript text the way line counting expects: one
// entry per line, no trailing empty entry, carriage returns stripped.
func splitLines(data string) []string {
	if data == "" {
		return nil
	}
	lines := strings.Split(data, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
