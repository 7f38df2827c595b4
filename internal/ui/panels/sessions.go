package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nanobot-ai/nanotop/internal/home"
	"github.com/nanobot-ai/nanotop/internal/ui/border"
	"github.com/nanobot-ai/nanotop/internal/ui/styles"
	"github.com/nanobot-ai/nanotop/internal/ui/text"
)

// Column widths for session list layout.
const (
	colSizeW = 8
	colAgeW  = 12
)

type Sessions struct {
	sessions     []home.Session
	filtered     []home.Session
	loadErr      error
	selected     int
	offset       int
	width        int
	height       int
	lastKeyG     bool
	lastKeyT     time.Time
	filterActive bool
	filterText   string
	filterInput  textinput.Model
	focused      bool
}

func NewSessions() Sessions {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 64

	return Sessions{filterInput: ti}
}

func (s Sessions) Update(msg tea.Msg) (Sessions, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionsLoadedMsg:
		s.sessions = msg.Sessions
		s.loadErr = msg.Err
		s.applyFilter()
		s.clampSelection()
		return s, nil
	}

	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.filterActive {
		return s.updateFilter(msg2)
	}

	switch msg2.String() {
	case "/":
		s.filterActive = true
		s.filterInput.Focus()
		return s, nil
	case "j", "down":
		if s.selected < len(s.filtered)-1 {
			s.selected++
			s.scrollToSelection()
		}
		s.lastKeyG = false
	case "k", "up":
		if s.selected > 0 {
			s.selected--
			s.scrollToSelection()
		}
		s.lastKeyG = false
	case "enter":
		if sel := s.SelectedSession(); sel != nil {
			name := sel.Name
			return s, func() tea.Msg { return OpenTranscriptMsg{Name: name} }
		}
	case "y":
		if sel := s.SelectedSession(); sel != nil {
			path := sel.Path
			return s, func() tea.Msg { return YankMsg{Text: path} }
		}
	case "G":
		s.selected = max(len(s.filtered)-1, 0)
		s.scrollToSelection()
		s.lastKeyG = false
	case "g":
		if s.lastKeyG && time.Since(s.lastKeyT) < 500*time.Millisecond {
			s.selected = 0
			s.scrollToSelection()
			s.lastKeyG = false
		} else {
			s.lastKeyG = true
			s.lastKeyT = time.Now()
		}
	default:
		s.lastKeyG = false
	}
	return s, nil
}

func (s *Sessions) updateFilter(msg tea.KeyMsg) (Sessions, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			s.filterText = ""
			s.filterInput.SetValue("")
		}
		s.filterActive = false
		s.filterInput.Blur()
		s.applyFilter()
		s.clampSelection()
		return *s, nil
	}

	var cmd tea.Cmd
	s.filterInput, cmd = s.filterInput.Update(msg)
	s.filterText = s.filterInput.Value()
	s.applyFilter()
	s.clampSelection()
	return *s, cmd
}

func (s Sessions) View() string {
	innerWidth := s.width - 2   // border sides
	innerHeight := s.height - 2 // border top/bottom
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	title := fmt.Sprintf("[1] Sessions (%d)", len(s.filtered))

	var keybinds []border.Keybind
	if s.focused {
		keybinds = []border.Keybind{
			{Key: "↵", Label: " view"},
			{Key: "y", Label: "ank path"},
			{Key: "/", Label: "filter"},
		}
	}

	content := s.renderContent(innerWidth, innerHeight)
	return border.RenderPanel(title, content, keybinds, s.width, s.height, s.focused)
}

func (s Sessions) renderContent(width, height int) string {
	if s.loadErr != nil {
		return styles.TextDimStyle.Render("Could not read sessions: " + s.loadErr.Error())
	}
	if len(s.filtered) == 0 {
		if s.filterActive || s.filterText != "" {
			return s.renderFilterBar(width) + "\nNo matching sessions."
		}
		return "No sessions yet."
	}

	var b strings.Builder

	availableRows := height
	if s.filterActive {
		b.WriteString(s.renderFilterBar(width))
		b.WriteString("\n")
		availableRows--
	}

	nameW := width - colSizeW - colAgeW - 2
	if nameW < 8 {
		nameW = 8
	}

	// Column header
	header := fmt.Sprintf("%-*s %*s %*s",
		nameW, "NAME",
		colSizeW, "SIZE",
		colAgeW, "MODIFIED",
	)
	b.WriteString(styles.TextSecondaryStyle.Render(text.Truncate(header, width)))
	b.WriteString("\n")
	availableRows--

	if s.offset > 0 {
		b.WriteString(styles.TextDimStyle.Render("  ▲"))
		b.WriteString("\n")
		availableRows--
	}

	end := s.offset + availableRows
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	// Reserve a row for bottom scroll indicator if needed
	if end < len(s.filtered) && availableRows > 1 {
		end = s.offset + availableRows - 1
		if end > len(s.filtered) {
			end = len(s.filtered)
		}
	}

	for i := s.offset; i < end; i++ {
		sess := s.filtered[i]

		name := text.Truncate(strings.TrimSuffix(sess.Name, ".jsonl"), nameW)
		size := text.FormatBytes(sess.Size)
		age := "—"
		if sess.Modified > 0 {
			age = text.RelativeTime(time.Unix(sess.Modified, 0))
		}

		var line string
		if i == s.selected {
			// Plain text for selected row so background covers the entire line
			plainLine := fmt.Sprintf("%-*s %*s %*s",
				nameW, name,
				colSizeW, size,
				colAgeW, age,
			)
			plainLine = text.Truncate(plainLine, width)
			line = styles.SelectedRowStyle.Width(width).Render(plainLine)
		} else {
			line = fmt.Sprintf("%-*s %s %s",
				nameW, name,
				styles.TextDimStyle.Render(fmt.Sprintf("%*s", colSizeW, size)),
				styles.TextDimStyle.Render(fmt.Sprintf("%*s", colAgeW, age)),
			)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(s.filtered) {
		b.WriteString("\n")
		b.WriteString(styles.TextDimStyle.Render("  ▼"))
	}

	return b.String()
}

func (s *Sessions) SetSize(w, h int) {
	s.width = w
	s.height = h
	s.filterInput.Width = w - 6
	s.clampSelection()
}

func (s *Sessions) SetFocused(focused bool) {
	s.focused = focused
}

func (s Sessions) SelectedSession() *home.Session {
	if len(s.filtered) == 0 || s.selected >= len(s.filtered) {
		return nil
	}
	sess := s.filtered[s.selected]
	return &sess
}

func (s *Sessions) applyFilter() {
	if s.filterText == "" {
		s.filtered = s.sessions
		return
	}
	query := strings.ToLower(s.filterText)
	filtered := make([]home.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.Name), query) {
			filtered = append(filtered, sess)
		}
	}
	s.filtered = filtered
}

func (s *Sessions) clampSelection() {
	if len(s.filtered) == 0 {
		s.selected = 0
		s.offset = 0
		return
	}
	if s.selected >= len(s.filtered) {
		s.selected = len(s.filtered) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	s.scrollToSelection()
}

func (s *Sessions) scrollToSelection() {
	visible := s.visibleRows()
	if visible <= 0 {
		return
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	maxOffset := len(s.filtered) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s Sessions) visibleRows() int {
	rows := s.height - 2 // border top/bottom
	rows--               // column header
	if s.filterActive {
		rows--
	}
	if s.offset > 0 {
		rows--
	}
	if s.offset+rows < len(s.filtered) {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (s Sessions) renderFilterBar(width int) string {
	return "/ " + s.filterInput.View()
}

// FilterActive reports whether the filter input is currently active.
func (s Sessions) FilterActive() bool {
	return s.filterActive
}
