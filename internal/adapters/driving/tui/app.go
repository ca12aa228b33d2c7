package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// App is the top-level Bubbletea model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView  *search.View
	currentView messages.ViewType

	// changes delivers note watcher events once Init has started the watcher.
	changes <-chan string

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Search, ports.Limit),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for searches and the note watcher.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init starts the note watcher and focuses the query input.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("Mission Control"),
		a.searchView.Init(),
	}

	if a.ports.Watcher != nil {
		changes, err := a.ports.Watcher.Watch(a.ctx)
		if err != nil {
			logger.Warn("Note watcher unavailable: %v", err)
		} else {
			a.changes = changes
			cmds = append(cmds, a.waitForChange())
		}
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks on the next watcher event.
func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return messages.WatchStopped{}
		}
		return messages.NotesChanged{Path: path}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.NotesChanged:
		logger.Debug("Note changed: %s", msg.Path)
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.WatchStopped:
		a.changes = nil
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}
	return a.searchView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Query:
  (type)      Enter search query
  enter       Run search
  ↑/↓         Previous queries
  tab         Cycle domain: all, memory, projects, tasks, activities
  esc         Back to results

Results:
  j/k, ↑/↓    Navigate results
  n, /        New search
  ?           Toggle help
  q, ctrl+c   Quit

Results refresh when MEMORY.md or memory/*.md change.

` + a.styles.Muted.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Watching reports whether note changes are being delivered.
func (a *App) Watching() bool {
	return a.changes != nil
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
