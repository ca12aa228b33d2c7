package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	queries []string
}

func (m *MockSearchService) Search(
	_ context.Context, query string, _ domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.queries = append(m.queries, query)
	counts := domain.NewSearchCounts()
	counts[domain.DomainTasks] = 1
	return &domain.SearchResponse{
		Query:   query,
		Results: []domain.Result{{Kind: domain.KindTask, Title: "Write tests", Score: 0.5, Ref: domain.RecordRef{ID: "t1"}}},
		Counts:  counts,
	}, nil
}

// mockWatcher hands out a channel the test controls.
type mockWatcher struct {
	ch  chan string
	err error
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ch, nil
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingSearchService)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)
	assert.NoError(t, (&Ports{Search: &MockSearchService{}}).Validate())
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{}})

	require.NoError(t, err)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	_, err = NewApp(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(&Ports{Search: &MockSearchService{}})

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Mission Control")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(&Ports{Search: &MockSearchService{}})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := NewApp(&Ports{Search: &MockSearchService{}})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := NewApp(&Ports{Search: &MockSearchService{}})
	app.SetDimensions(100, 30)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Cycle domain")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView(), "other keys are swallowed")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SearchFlow(t *testing.T) {
	svc := &MockSearchService{}
	app, _ := NewApp(&Ports{Search: svc, Limit: 3})
	app.SetDimensions(120, 40)

	for _, r := range "tests" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, []string{"tests"}, svc.queries)
	assert.Len(t, app.SearchView().Results(), 1)
	assert.Contains(t, app.View(), "Write tests")
}

func TestApp_WatcherRefreshesResults(t *testing.T) {
	svc := &MockSearchService{}
	watcher := &mockWatcher{ch: make(chan string, 1)}
	app, _ := NewApp(&Ports{Search: svc, Watcher: watcher})
	app.WithContext(context.Background())

	require.NotNil(t, app.Init())
	assert.True(t, app.Watching())

	app.Update(messages.SearchCompleted{Query: "tests", Response: &domain.SearchResponse{
		Query: "tests", Results: []domain.Result{}, Counts: domain.NewSearchCounts(),
	}})

	watcher.ch <- "/notes/MEMORY.md"
	msg := app.waitForChange()()
	assert.Equal(t, messages.NotesChanged{Path: "/notes/MEMORY.md"}, msg)

	_, cmd := app.Update(msg)
	require.NotNil(t, cmd)

	close(watcher.ch)
	assert.Equal(t, messages.WatchStopped{}, app.waitForChange()())
	app.Update(messages.WatchStopped{})
	assert.False(t, app.Watching())
}

func TestApp_WatcherUnavailable(t *testing.T) {
	app, _ := NewApp(&Ports{
		Search:  &MockSearchService{},
		Watcher: &mockWatcher{err: errors.New("too many open files")},
	})

	app.Init()

	assert.False(t, app.Watching())
}
