package list

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func sampleResults() []domain.Result {
	return []domain.Result{
		{Kind: domain.KindMemory, Title: "MEMORY.md", Snippet: "rocket fuel notes", Score: 0.95,
			Ref: domain.NoteRef{Path: "/notes/MEMORY.md", Line: 4}},
		{Kind: domain.KindProject, Title: "Rocket launch", Snippet: "Q3 launch", Score: 0.8,
			Ref: domain.RecordRef{ID: "p1"}},
		{Kind: domain.KindActivity, Title: "Deployed", Snippet: "ops", Score: 0.5,
			Ref: domain.ActivityRef{ID: "a1", Timestamp: time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)}},
	}
}

func TestResultList_EmptyView(t *testing.T) {
	r := NewResultList(nil)

	assert.Contains(t, r.View(), "No results")
	assert.Nil(t, r.SelectedResult())
	assert.Equal(t, 0, r.Count())
}

func TestResultList_ViewRendersKindTitleScoreSnippet(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(100, 30)
	r.SetResults(sampleResults())

	view := r.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "memory")
	assert.Contains(t, view, "MEMORY.md")
	assert.Contains(t, view, "0.95")
	assert.Contains(t, view, "rocket fuel notes")
	assert.Contains(t, view, "/notes/MEMORY.md:4")
	assert.Contains(t, view, "2024-01-02 03:04")
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	r.MoveDown()
	assert.Equal(t, 2, r.Selected(), "selection stops at the last result")

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.NotNil(t, r.SelectedResult())
	assert.Equal(t, "Rocket launch", r.SelectedResult().Title)

	r.SetResults(sampleResults()[:1])
	assert.Equal(t, 0, r.Selected(), "new results reset the selection")
}

func TestResultList_ScrollsToSelection(t *testing.T) {
	results := make([]domain.Result, 10)
	for i := range results {
		results[i] = domain.Result{Kind: domain.KindTask, Title: fmt.Sprintf("task-%d", i)}
	}
	r := NewResultList(nil)
	r.SetDimensions(80, 8)
	r.SetResults(results)

	for range 9 {
		r.MoveDown()
	}

	view := r.View()
	assert.Contains(t, view, "task-9")
	assert.NotContains(t, view, "task-0")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "día...", truncate("díaaaaaaaa", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
