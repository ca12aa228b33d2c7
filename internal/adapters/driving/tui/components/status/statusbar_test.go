package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")
	assert.Contains(t, bar.View(), "enter: search")
}

func TestBar_Searching(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateSearching)

	assert.Contains(t, bar.View(), "Searching...")
}

func TestBar_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetState(StateError)

	assert.Contains(t, bar.View(), "Error")

	bar.SetMessage("search failed")
	assert.Contains(t, bar.View(), "Error: search failed")
}

func TestBar_ResultsShowCounts(t *testing.T) {
	counts := domain.NewSearchCounts()
	counts[domain.DomainMemory] = 3
	counts[domain.DomainTasks] = 9

	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateResults)
	bar.SetCounts(5, counts)

	view := bar.View()
	assert.Contains(t, view, "5 of 12 results")
	assert.Contains(t, view, "memory 3 · tasks 9")
	assert.NotContains(t, view, "projects 0")
	assert.Contains(t, view, "n: new search")
	assert.Equal(t, 5, bar.Shown())
}

func TestBar_ResultsWithMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateResults)
	bar.SetCounts(0, domain.NewSearchCounts())
	bar.SetMessage("(notes changed)")

	view := bar.View()
	assert.Contains(t, view, "0 of 0 results")
	assert.Contains(t, view, "(notes changed)")
	assert.Contains(t, view, "q: quit", "no results falls back to the short hints")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("x")
	bar.SetCounts(2, domain.NewSearchCounts())

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.Shown())
}
