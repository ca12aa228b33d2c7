// Package input provides the query input for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
)

const (
	charLimit = 256
	minWidth  = 20
)

// SearchInput is a single-line query box labelled with the active domain scope.
// Submitted queries are kept so earlier searches can be recalled.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	scope     string
	width     int

	history []string
	cursor  int
}

// NewSearchInput creates a focused query input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search notes, projects, tasks and activity..."
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		scope:     "all",
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the label and the input box.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search ") + s.styles.Muted.Render("["+s.scope+"] ")
	box := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the current query text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the query text.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// SetScope sets the domain label shown before the box.
func (s *SearchInput) SetScope(scope string) {
	s.scope = scope
}

// Scope returns the domain label.
func (s *SearchInput) Scope() string {
	return s.scope
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sizes the box to the terminal width less the label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inner := width - 20
	if inner < minWidth {
		inner = minWidth
	}
	s.textinput.Width = inner
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Remember records a submitted query. Repeats of the latest entry are ignored.
func (s *SearchInput) Remember(query string) {
	if query == "" {
		return
	}
	if n := len(s.history); n == 0 || s.history[n-1] != query {
		s.history = append(s.history, query)
	}
	s.cursor = len(s.history)
}

// Recall moves through remembered queries. Negative delta goes back in time.
// Moving past the newest entry clears the input.
func (s *SearchInput) Recall(delta int) {
	if len(s.history) == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.history) {
		s.cursor = len(s.history)
		s.textinput.SetValue("")
		return
	}
	s.textinput.SetValue(s.history[s.cursor])
	s.textinput.CursorEnd()
}

// History returns remembered queries, oldest first.
func (s *SearchInput) History() []string {
	return s.history
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.cursor = len(s.history)
}
