// Package list renders ranked search results.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// linesPerResult is the rendered height of one result.
const linesPerResult = 3

// ResultList displays search results in a navigable list.
type ResultList struct {
	results  []domain.Result
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// Update moves the selection on arrow and j/k keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := (r.height - 2) / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	lines := make([]string, 0, end-start+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, r.results[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, result domain.Result) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	badge := r.styles.Kind(result.Kind).Render(fmt.Sprintf("%-8s", result.Kind))
	score := fmt.Sprintf("%.2f", result.Score)
	title := truncate(result.Title, max(r.width-24, 10))

	var head string
	if index == r.selected {
		head = indicator + badge + " " + r.styles.Selected.Render(title) + "  " + r.styles.Normal.Render(score)
	} else {
		head = indicator + badge + " " + r.styles.Normal.Render(title) + "  " + r.styles.Muted.Render(score)
	}

	snippet := truncate(result.Snippet, max(r.width-6, 20))
	body := r.styles.Muted.Render("    " + snippet)
	if loc := location(result.Ref); loc != "" {
		body += "\n" + r.styles.Help.Render("    "+loc)
	}
	return head + "\n" + body
}

// location describes where a result lives.
func location(ref domain.SourceRef) string {
	switch ref := ref.(type) {
	case domain.NoteRef:
		return fmt.Sprintf("%s:%d", ref.Path, ref.Line)
	case domain.ActivityRef:
		return ref.Timestamp.Local().Format("2006-01-02 15:04")
	default:
		return ""
	}
}

// truncate shortens s to n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the results and resets the selection.
func (r *ResultList) SetResults(results []domain.Result) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.Result {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.Result {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}
