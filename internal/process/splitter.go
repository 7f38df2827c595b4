package process

import (
	"strings"
	"unicode"
)

// splitPendingLimit forces a flush when a stream produces this many
// bytes without a terminator, so spinners and progress bars that
// rewrite a single line still reach the log.
const splitPendingLimit = 2048

// lineSplitter turns raw stream chunks into trimmed, non-blank lines.
// Both \n and \r end a line, so carriage-return progress output splits
// cleanly. Invalid UTF-8 is replaced rather than surfaced as an error.
type lineSplitter struct {
	pending string
}

// Feed appends a chunk and returns the complete lines it produced, in
// order.
func (ls *lineSplitter) Feed(chunk []byte) []string {
	ls.pending += string(chunk)
	var lines []string
	for {
		idx := strings.IndexAny(ls.pending, "\n\r")
		if idx < 0 {
			break
		}
		line := cleanLine(ls.pending[:idx])
		ls.pending = ls.pending[idx+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(ls.pending) > splitPendingLimit {
		line := cleanLine(ls.pending)
		ls.pending = ""
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Flush returns the final pending line at end of stream, if any.
func (ls *lineSplitter) Flush() (string, bool) {
	line := cleanLine(ls.pending)
	ls.pending = ""
	if line == "" {
		return "", false
	}
	return line, true
}

// cleanLine replaces invalid UTF-8 and strips trailing whitespace.
func cleanLine(s string) string {
	return strings.TrimRightFunc(strings.ToValidUTF8(s, "�"), unicode.IsSpace)
}
