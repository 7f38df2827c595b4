package layout

// Layout holds the computed dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Top row panels
	SessionsWidth  int
	SessionsHeight int
	LogViewWidth   int
	LogViewHeight  int

	// Chat input row
	ChatWidth  int
	ChatHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	// ChatRows is the fixed height of the chat input panel, borders included.
	ChatRows = 3

	LeftColWeight = 0.30
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar and ChatRows for the chat input
// before giving the rest to the top row.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	topRowHeight := termHeight - 1 - ChatRows

	sessionsWidth := int(float64(termWidth) * LeftColWeight)
	logViewWidth := termWidth - sessionsWidth

	l.SessionsWidth = sessionsWidth
	l.SessionsHeight = topRowHeight
	l.LogViewWidth = logViewWidth
	l.LogViewHeight = topRowHeight

	l.ChatWidth = termWidth
	l.ChatHeight = ChatRows

	l.StatusBarWidth = termWidth

	return l
}
