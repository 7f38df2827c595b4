package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/nanobot-ai/nanotop/internal/process"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/selection"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
)

// lineSlice adapts a string slice to the selection.LinesProvider interface.
type lineSlice []string

func (s lineSlice) Lines() []string { return s }

type LogView struct {
	viewport    viewport.Model
	width       int
	height      int
	store       *process.Store
	active      bool
	follow      bool
	focused     bool
	gTap        DoubleTap
	scrollSpeed int

	// One plain line per entry, kind tag included. Rebuilt from the
	// store on every refresh; search and yank both read from here.
	entries []process.LogEntry
	lines   []string

	sel selection.Selection

	// Search state
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
	matchIndices []int
	currentMatch int
}

func NewLogView(store *process.Store) LogView {
	vp := viewport.New(0, 0)
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	return LogView{
		viewport:    vp,
		store:       store,
		follow:      true,
		searchInput: ti,
		scrollSpeed: 3,
		gTap:        NewDoubleTap(gTapIDLogView),
	}
}

func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case process.LogLineMsg:
		atBottom := l.viewport.AtBottom()
		l.refreshLines()
		l.viewport.SetContent(l.renderContent())
		if atBottom || l.follow {
			l.viewport.GotoBottom()
		}
		if l.searchQuery != "" {
			l.recomputeMatches()
		}
		return l, nil
	case GTimerExpiredMsg:
		l.gTap.HandleExpiry(msg)
		return l, nil
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp {
			l.follow = false
		}
	case tea.KeyMsg:
		// Route keys to the search input while typing a query
		if l.searching {
			return l.updateSearch(msg)
		}

		// Copy mode key handling
		if l.sel.Active() {
			return l.updateCopyMode(msg)
		}

		// Search query active (not typing): n/N navigate matches
		if l.searchQuery != "" {
			switch msg.String() {
			case "n":
				l.nextMatch()
				return l, nil
			case "N":
				l.prevMatch()
				return l, nil
			case "/":
				l.searching = true
				l.searchInput.SetValue(l.searchQuery)
				l.searchInput.Focus()
				l.resizeViewport()
				return l, textinput.Blink
			case "esc":
				l.clearSearch()
				return l, nil
			}
		}

		switch msg.String() {
		case "G":
			l.follow = true
			l.viewport.GotoBottom()
			return l, nil
		case "g":
			fired, cmd := l.gTap.Check()
			l.follow = false
			if fired {
				l.viewport.GotoTop()
				return l, nil
			}
			return l, cmd
		case "/":
			l.searching = true
			l.follow = false
			l.searchInput.SetValue("")
			l.searchInput.Focus()
			l.resizeViewport()
			return l, textinput.Blink
		case "y":
			l.enterCopyMode()
			return l, nil
		case "j", "down":
			l.follow = false
			step := l.scrollSpeed
			if step <= 0 {
				step = 1
			}
			l.viewport.SetYOffset(l.viewport.YOffset + step)
			return l, nil
		case "k", "up":
			l.follow = false
			step := l.scrollSpeed
			if step <= 0 {
				step = 1
			}
			offset := l.viewport.YOffset - step
			if offset < 0 {
				offset = 0
			}
			l.viewport.SetYOffset(offset)
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

func (l *LogView) updateSearch(msg tea.KeyMsg) (LogView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.clearSearch()
		return *l, nil
	case "enter":
		l.searching = false
		l.searchQuery = l.searchInput.Value()
		l.searchInput.Blur()
		l.resizeViewport()
		l.recomputeMatches()
		if len(l.matchIndices) > 0 {
			l.currentMatch = 0
			l.jumpToMatch()
		}
		l.refreshContent()
		return *l, nil
	}

	var cmd tea.Cmd
	l.searchInput, cmd = l.searchInput.Update(msg)
	// Live-update matches as user types
	l.searchQuery = l.searchInput.Value()
	l.recomputeMatches()
	l.refreshContent()
	return *l, cmd
}

func (l *LogView) clearSearch() {
	l.searching = false
	l.searchQuery = ""
	l.matchIndices = nil
	l.currentMatch = 0
	l.searchInput.Blur()
	l.resizeViewport()
	l.refreshContent()
}

func (l LogView) View() string {
	title := "[2] " + styles.TitleStyle.Render("Log")

	var keybinds []border.Keybind
	if l.focused {
		if l.sel.Active() {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank"},
				{Key: "j", Label: "/k select"},
				{Key: "Esc", Label: " cancel"},
			}
		} else {
			keybinds = []border.Keybind{
				{Key: "y", Label: "ank/copy"},
				{Key: "G", Label: "bottom"},
				{Key: "g", Label: "g top"},
				{Key: "/", Label: "search"},
			}
			if !l.viewport.AtBottom() && !l.follow {
				keybinds = append(keybinds, border.Keybind{Key: "↓", Label: " new output"})
			}
		}
	}

	content := l.viewport.View()

	// Append copy mode status, search bar, or match status below the viewport
	if l.sel.Active() {
		selStart, selEnd := l.sel.CopySelectionRange()
		count := selEnd - selStart + 1
		status := styles.TextSecondaryStyle.Render(
			fmt.Sprintf("  VISUAL: %d line(s) selected", count),
		) + styles.TextDimStyle.Render(" (y yank, Esc cancel)")
		content += "\n" + status
	} else if l.searching {
		content += "\n" + l.searchInput.View()
	} else if l.searchQuery != "" {
		total := len(l.matchIndices)
		var status string
		if total == 0 {
			status = styles.TextDimStyle.Render("  No matches")
		} else {
			status = styles.TextSecondaryStyle.Render(
				fmt.Sprintf("  Match %d/%d", l.currentMatch+1, total),
			) + styles.TextDimStyle.Render(" (n/N navigate, / edit, Esc clear)")
		}
		content += "\n" + status
	}

	return border.RenderPanel(title, content, keybinds, l.width, l.height, l.focused)
}

func (l *LogView) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.resizeViewport()
	l.refreshContent()
}

func (l *LogView) SetFocused(focused bool) {
	l.focused = focused
}

func (l *LogView) SetScrollSpeed(speed int) {
	if speed > 0 {
		l.scrollSpeed = speed
	}
}

// SetActive toggles the streaming cursor shown after the last line.
func (l *LogView) SetActive(active bool) {
	if l.active == active {
		return
	}
	l.active = active
	l.refreshContent()
}

// Refresh re-reads the store. Used after streaming is re-enabled or on
// a manual refresh, when entries may have landed without a live message.
func (l *LogView) Refresh() {
	l.refreshContent()
	if l.searchQuery != "" {
		l.recomputeMatches()
	}
}

// ConsumesKeys reports whether the log view is in a mode that should
// consume all key events before global keybindings apply.
func (l LogView) ConsumesKeys() bool {
	return l.searching || l.searchQuery != "" || l.sel.Active()
}

// resizeViewport recalculates the viewport inner dimensions, accounting for
// the search bar when it's visible.
func (l *LogView) resizeViewport() {
	innerW := l.width - 2
	innerH := l.height - 2
	if l.searching || l.searchQuery != "" || l.sel.Active() {
		innerH-- // Reserve 1 row for search bar / status / copy mode
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	l.viewport.Width = innerW
	l.viewport.Height = innerH
}

// refreshLines rebuilds the plain line cache from the store.
func (l *LogView) refreshLines() {
	l.entries = l.store.Snapshot()
	l.lines = l.lines[:0]
	for _, e := range l.entries {
		l.lines = append(l.lines, fmt.Sprintf("%-7s %s", e.Kind, e.Text))
	}
}

// refreshContent re-reads the store and re-sets the viewport content.
func (l *LogView) refreshContent() {
	l.refreshLines()
	l.viewport.SetContent(l.renderContent())
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// renderContentBase builds the styled log content without selection highlighting.
func (l *LogView) renderContentBase() string {
	if len(l.entries) == 0 {
		return "Waiting for output..."
	}

	msgStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	// Build a set of matching line indices for quick lookup
	matchSet := make(map[int]bool, len(l.matchIndices))
	for _, idx := range l.matchIndices {
		matchSet[idx] = true
	}
	currentMatchLine := -1
	if len(l.matchIndices) > 0 && l.currentMatch >= 0 && l.currentMatch < len(l.matchIndices) {
		currentMatchLine = l.matchIndices[l.currentMatch]
	}

	styled := make([]string, 0, len(l.entries))
	for i, e := range l.entries {
		tag := lipgloss.NewStyle().Foreground(styles.KindColor(e.Kind)).
			Render(fmt.Sprintf("%-7s", e.Kind))

		body := e.Text
		if l.searchQuery != "" && matchSet[i] {
			body = highlightMatches(body, l.searchQuery, i == currentMatchLine)
		} else if e.Stream == process.StreamStderr {
			body = styles.StderrTagStyle.Render(body)
		} else {
			body = msgStyle.Render(body)
		}
		styled = append(styled, tag+" "+body)
	}

	result := strings.Join(styled, "\n")

	if l.active {
		result += " ▍"
	}

	return result
}

// renderContent builds the styled log content, including search and selection highlights.
func (l *LogView) renderContent() string {
	content := l.renderContentBase()

	if l.sel.Active() {
		selStart, selEnd := l.sel.CopySelectionRange()
		content = applySelectionHighlight(content, selStart, selEnd)
	} else if l.sel.MouseActive() {
		sl, sc, el, ec := l.sel.NormalizedMouseSelection()
		content = applyCharSelectionHighlight(content, sl, sc, el, ec)
	}

	return content
}

func (l *LogView) recomputeMatches() {
	l.matchIndices = nil
	l.currentMatch = 0
	if l.searchQuery == "" {
		return
	}
	query := strings.ToLower(l.searchQuery)
	for i, e := range l.entries {
		if strings.Contains(strings.ToLower(e.Text), query) {
			l.matchIndices = append(l.matchIndices, i)
		}
	}
}

func (l *LogView) nextMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch + 1) % len(l.matchIndices)
	l.jumpToMatch()
}

func (l *LogView) prevMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch - 1 + len(l.matchIndices)) % len(l.matchIndices)
	l.jumpToMatch()
}

func (l *LogView) jumpToMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	lineIdx := l.matchIndices[l.currentMatch]
	l.follow = false
	l.viewport.SetYOffset(lineIdx)
	l.refreshContent()
}

func (l *LogView) enterCopyMode() {
	l.refreshLines()
	l.sel.EnterCopyMode(lineSlice(l.lines), l.viewport.YOffset, l.viewport.Height)
	if l.sel.Active() {
		l.follow = false
		l.viewport.SetContent(l.renderContent())
	}
}

func (l *LogView) updateCopyMode(msg tea.KeyMsg) (LogView, tea.Cmd) {
	yanked, cmd := l.sel.UpdateCopyMode(
		msg,
		lineSlice(l.lines),
		&l.viewport,
		&l.gTap.Pending,
		GTimerExpiredMsg{ID: gTapIDLogView},
	)
	l.viewport.SetContent(l.renderContent())
	if yanked != "" {
		return *l, func() tea.Msg { return YankMsg{Text: yanked} }
	}
	return *l, cmd
}

// StartMouseSelection begins a mouse drag selection at the given panel-relative coordinates.
func (l *LogView) StartMouseSelection(relX, relY int) {
	l.refreshLines()
	l.sel.StartMouse(relX, relY, l.viewport.YOffset)
	l.follow = false
	l.viewport.SetContent(l.renderContent())
}

// ExtendMouseSelection updates the cursor position during a mouse drag.
func (l *LogView) ExtendMouseSelection(relX, relY int) {
	if !l.sel.MouseActive() {
		return
	}
	l.sel.ExtendMouse(relX, relY, l.viewport.YOffset)
	l.viewport.SetContent(l.renderContent())
}

// FinalizeMouseSelection ends the mouse drag and returns the selected text.
// Returns empty string for single-click (no drag).
func (l *LogView) FinalizeMouseSelection(relX, relY int) string {
	if !l.sel.MouseActive() {
		return ""
	}
	sl, sc, el, ec, singleClick := l.sel.FinalizeMouse(relX, relY, l.viewport.YOffset)
	if singleClick {
		l.viewport.SetContent(l.renderContent())
		return ""
	}
	content := l.renderContentBase()
	text := extractCharSelection(content, sl, sc, el, ec)
	l.viewport.SetContent(l.renderContent())
	return text
}

// CancelMouseSelection clears mouse selection state without copying.
func (l *LogView) CancelMouseSelection() {
	l.sel.CancelMouse()
	l.viewport.SetContent(l.renderContent())
}

// applySelectionHighlight wraps lines within the selection range with SelectionStyle.
func applySelectionHighlight(content string, selStart, selEnd int) string {
	lines := strings.Split(content, "\n")
	for i := selStart; i <= selEnd && i < len(lines); i++ {
		if i >= 0 {
			lines[i] = styles.SelectionStyle.Render(ansi.Strip(lines[i]))
		}
	}
	return strings.Join(lines, "\n")
}

// applyCharSelectionHighlight applies character-level selection highlighting.
// Uses ANSI-aware cutting so styled content is handled correctly.
func applyCharSelectionHighlight(content string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		if i < startLine || i > endLine {
			continue
		}
		lineWidth := ansi.StringWidth(lines[i])
		if lineWidth == 0 {
			continue
		}

		var sc, ec int
		if i == startLine && i == endLine {
			sc = startCol
			ec = endCol + 1
		} else if i == startLine {
			sc = startCol
			ec = lineWidth
		} else if i == endLine {
			sc = 0
			ec = endCol + 1
		} else {
			sc = 0
			ec = lineWidth
		}

		if sc > lineWidth {
			sc = lineWidth
		}
		if ec > lineWidth {
			ec = lineWidth
		}
		if sc >= ec {
			continue
		}

		before := ansi.Cut(lines[i], 0, sc)
		selected := ansi.Cut(lines[i], sc, ec)
		after := ansi.Cut(lines[i], ec, lineWidth)
		lines[i] = before + styles.SelectionStyle.Render(ansi.Strip(selected)) + after
	}
	return strings.Join(lines, "\n")
}

// extractCharSelection extracts plain text from a character-level selection
// on styled content. Returns the visible text within the selection range.
func extractCharSelection(styledContent string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(styledContent, "\n")
	var result []string

	for i := startLine; i <= endLine && i < len(lines); i++ {
		if i < 0 {
			continue
		}
		lineWidth := ansi.StringWidth(lines[i])

		var sc, ec int
		if i == startLine && i == endLine {
			sc = startCol
			ec = endCol + 1
		} else if i == startLine {
			sc = startCol
			ec = lineWidth
		} else if i == endLine {
			sc = 0
			ec = endCol + 1
		} else {
			sc = 0
			ec = lineWidth
		}

		if sc > lineWidth {
			sc = lineWidth
		}
		if ec > lineWidth {
			ec = lineWidth
		}
		if sc >= ec {
			result = append(result, "")
			continue
		}

		extracted := ansi.Cut(lines[i], sc, ec)
		result = append(result, ansi.Strip(extracted))
	}

	return strings.Join(result, "\n")
}

// highlightMatches wraps occurrences of query in line with highlight styling.
// Uses case-insensitive matching with literal string comparison.
func highlightMatches(line, query string, isCurrent bool) string {
	if query == "" {
		return line
	}
	lower := strings.ToLower(line)
	lowerQ := strings.ToLower(query)

	style := styles.SearchHighlightStyle
	if isCurrent {
		style = styles.CurrentMatchStyle
	}

	var b strings.Builder
	start := 0
	qLen := len(lowerQ)
	for {
		idx := strings.Index(lower[start:], lowerQ)
		if idx < 0 {
			b.WriteString(line[start:])
			break
		}
		// Write text before match
		b.WriteString(line[start : start+idx])
		// Write highlighted match (using original case)
		b.WriteString(style.Render(line[start+idx : start+idx+qLen]))
		start += idx + qLen
	}
	return b.String()
}
