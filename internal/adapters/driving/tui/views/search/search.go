// Package search provides the search view for the TUI.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mission-control/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// scopeAll is the label for an unrestricted search.
const scopeAll = "all"

// View holds the query input, the result list and the status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context
	limit         int

	// scopes are the domain filters cycled with the domain key.
	scopes []string
	scope  int

	// lastQuery is the query behind the displayed results.
	lastQuery string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new search view. A non-positive limit uses the default search limit.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	limit int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if limit < 1 {
		limit = domain.DefaultSearchLimit
	}

	scopes := []string{scopeAll}
	for _, d := range domain.AllDomains() {
		scopes = append(scopes, d.String())
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		limit:         limit,
		scopes:        scopes,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context used for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.NotesChanged:
		return v, v.Refresh()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Domain) {
		v.cycleScope()
		if v.lastQuery != "" {
			return v, v.search(v.lastQuery)
		}
		return v, nil
	}

	if v.focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			query := v.input.Value()
			if query == "" {
				return v, nil
			}
			v.input.Remember(query)
			return v, v.search(query)
		case tea.KeyUp:
			v.input.Recall(-1)
			return v, nil
		case tea.KeyDown:
			v.input.Recall(1)
			return v, nil
		case tea.KeyEsc:
			if v.list.Count() > 0 {
				v.focusResults()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) cycleScope() {
	v.scope = (v.scope + 1) % len(v.scopes)
	v.input.SetScope(v.scopes[v.scope])
}

// options builds search options from the current scope.
func (v *View) options() domain.SearchOptions {
	opts := domain.SearchOptions{Limit: v.limit}
	if s := v.scopes[v.scope]; s != scopeAll {
		opts.Domains = domain.ParseDomains(s)
	}
	return opts
}

// search marks the view busy and returns a command running the query.
func (v *View) search(query string) tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("")

	svc, ctx, opts := v.searchService, v.ctx, v.options()
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		resp, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Response: resp, Err: err}
	}
}

// Refresh re-runs the last query. It returns nil when nothing has been searched.
func (v *View) Refresh() tea.Cmd {
	if v.lastQuery == "" {
		return nil
	}
	return v.search(v.lastQuery)
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.lastQuery = msg.Query
	results := msg.Response.Results
	v.list.SetResults(results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCounts(len(results), msg.Response.Counts)

	if len(results) > 0 {
		v.focusResults()
	}
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Mission Control"), "", v.input.View(), "")
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// LastQuery returns the query behind the displayed results.
func (v *View) LastQuery() string {
	return v.lastQuery
}

// Scope returns the active domain filter label.
func (v *View) Scope() string {
	return v.scopes[v.scope]
}

// Results returns the displayed results.
func (v *View) Results() []domain.Result {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty input.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.list.SetResults(nil)
	v.lastQuery = ""
	v.err = nil
	v.statusbar.Clear()
}
