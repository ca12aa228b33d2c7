// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar shows search state, per-domain counts and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	counts  domain.SearchCounts
	shown   int
	width   int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		text := fmt.Sprintf("%d of %d results", s.shown, s.counts.Total())
		if breakdown := s.breakdown(); breakdown != "" {
			text += "  " + breakdown
		}
		if s.message != "" {
			text += "  " + s.message
		}
		return s.styles.Normal.Render(text)
	case StateReady:
	}
	if s.message != "" {
		return s.styles.Muted.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

// breakdown lists non-zero domain counts in merge order.
func (s *Bar) breakdown() string {
	parts := make([]string, 0, len(s.counts))
	for _, d := range domain.AllDomains() {
		if n := s.counts[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", d, n))
		}
	}
	return strings.Join(parts, " · ")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.shown > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a short note shown after the counts.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts records how many results were shown and the pre-truncation counts.
func (s *Bar) SetCounts(shown int, counts domain.SearchCounts) {
	s.shown = shown
	s.counts = counts
}

// Shown returns the number of results displayed.
func (s *Bar) Shown() int {
	return s.shown
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.shown = 0
	s.counts = nil
}
