package api

import (
	"time"

	"github.com/samber/lo"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// SearchResultBody is one search hit on the wire.
type SearchResultBody struct {
	Type      string     `json:"type" enum:"memory,project,task,activity"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet"`
	Score     float64    `json:"score" minimum:"0" maximum:"1"`
	ID        string     `json:"id,omitempty"`
	Path      string     `json:"path,omitempty"`
	Line      int        `json:"line,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// SearchCountsBody holds per-domain counts before truncation.
type SearchCountsBody struct {
	Memory     int `json:"memory"`
	Projects   int `json:"projects"`
	Tasks      int `json:"tasks"`
	Activities int `json:"activities"`
}

// SearchBody is the search response document.
type SearchBody struct {
	Query   string             `json:"query"`
	Results []SearchResultBody `json:"results"`
	Counts  SearchCountsBody   `json:"counts"`
}

// NewSearchBody converts a search response to its wire form.
func NewSearchBody(resp *domain.SearchResponse) SearchBody {
	return SearchBody{
		Query:   resp.Query,
		Results: lo.Map(resp.Results, func(r domain.Result, _ int) SearchResultBody { return newResultBody(r) }),
		Counts: SearchCountsBody{
			Memory:     resp.Counts[domain.DomainMemory],
			Projects:   resp.Counts[domain.DomainProjects],
			Tasks:      resp.Counts[domain.DomainTasks],
			Activities: resp.Counts[domain.DomainActivities],
		},
	}
}

func newResultBody(r domain.Result) SearchResultBody {
	body := SearchResultBody{
		Type:    string(r.Kind),
		Title:   r.Title,
		Snippet: r.Snippet,
		Score:   r.Score,
	}
	switch ref := r.Ref.(type) {
	case domain.NoteRef:
		body.Path = ref.Path
		body.Line = ref.Line
	case domain.RecordRef:
		body.ID = ref.ID
	case domain.ActivityRef:
		body.ID = ref.ID
		ts := ref.Timestamp.UTC()
		body.Timestamp = &ts
	}
	return body
}

// TaskBody is a task on the wire.
type TaskBody struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newTaskBody(t domain.Task) TaskBody {
	return TaskBody{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Completed: t.Completed,
		Position:  t.Position,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

// ProjectBody is a project card with its tasks.
type ProjectBody struct {
	ID          string     `json:"id"`
	ColumnID    string     `json:"columnId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Position    int        `json:"position"`
	Labels      []string   `json:"labels"`
	Tasks       []TaskBody `json:"tasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newProjectBody(p domain.Project) ProjectBody {
	body := ProjectBody{
		ID:          p.ID,
		ColumnID:    p.ColumnID,
		Title:       p.Title,
		Description: optional(p.Description),
		Assignee:    optional(p.Assignee),
		Priority:    p.Priority.String(),
		Position:    p.Position,
		Labels:      p.Labels,
		Tasks:       lo.Map(p.Tasks, func(t domain.Task, _ int) TaskBody { return newTaskBody(t) }),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
	if body.Labels == nil {
		body.Labels = []string{}
	}
	if p.DueDate != nil {
		due := p.DueDate.UTC()
		body.DueDate = &due
	}
	return body
}

// ColumnBody is a board lane with its projects.
type ColumnBody struct {
	ID        string        `json:"id"`
	BoardID   string        `json:"boardId"`
	Name      string        `json:"name"`
	Position  int           `json:"position"`
	Color     *string       `json:"color"`
	Projects  []ProjectBody `json:"projects"`
	CreatedAt time.Time     `json:"createdAt"`
}

func newColumnBody(c domain.Column) ColumnBody {
	return ColumnBody{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Name:      c.Name,
		Position:  c.Position,
		Color:     optional(c.Color),
		Projects:  lo.Map(c.Projects, func(p domain.Project, _ int) ProjectBody { return newProjectBody(p) }),
		CreatedAt: c.CreatedAt.UTC(),
	}
}

// BoardBody is the full board tree.
type BoardBody struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Columns   []ColumnBody `json:"columns"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func newBoardBody(b *domain.Board) BoardBody {
	return BoardBody{
		ID:        b.ID,
		Name:      b.Name,
		Columns:   lo.Map(b.Columns, func(c domain.Column, _ int) ColumnBody { return newColumnBody(c) }),
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

// ActivityBody is an activity log entry.
type ActivityBody struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	Category    string         `json:"category"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	SessionID   *string        `json:"sessionId"`
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewActivityBody converts an activity to its wire form.
func NewActivityBody(a domain.Activity) ActivityBody {
	return ActivityBody{
		ID:          a.ID,
		Action:      a.Action,
		Category:    a.Category,
		Title:       a.Title,
		Description: optional(a.Description),
		Metadata:    a.Metadata,
		SessionID:   optional(a.SessionID),
		Status:      a.Status,
		Timestamp:   a.Timestamp.UTC(),
	}
}

// EventBody is a calendar event.
type EventBody struct {
	ID         string `json:"id"`
	Type       string `json:"type" enum:"cron,due_date"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
	Color      string `json:"color"`
}

// CalendarBody is one week of events.
type CalendarBody struct {
	WeekOf string      `json:"weekOf"`
	Events []EventBody `json:"events"`
}

// NewCalendarBody converts a calendar week to its wire form.
func NewCalendarBody(w *domain.CalendarWeek) CalendarBody {
	return CalendarBody{
		WeekOf: w.WeekOf,
		Events: lo.Map(w.Events, func(e domain.CalendarEvent, _ int) EventBody {
			return EventBody{
				ID:         e.ID,
				Type:       string(e.Type),
				Title:      e.Title,
				Date:       e.Date,
				Time:       e.Time,
				Recurrence: e.Recurrence,
				Priority:   string(e.Priority),
				Status:     string(e.Status),
				Color:      e.Color,
			}
		}),
	}
}

// AgentStatusBody is the presence read model.
type AgentStatusBody struct {
	Active       bool       `json:"active"`
	Sessions     []string   `json:"sessions"`
	SessionCount int        `json:"sessionCount"`
	LastSeen     *time.Time `json:"lastSeen"`
	CheckedAt    time.Time  `json:"checkedAt"`
	Error        string     `json:"error,omitempty"`
}

func newAgentStatusBody(p domain.AgentPresence) AgentStatusBody {
	body := AgentStatusBody{
		Active:       p.Active,
		Sessions:     p.Sessions,
		SessionCount: p.SessionCount,
		CheckedAt:    p.CheckedAt.UTC(),
		Error:        p.Error,
	}
	if body.Sessions == nil {
		body.Sessions = []string{}
	}
	if p.LastSeen != nil {
		seen := p.LastSeen.UTC()
		body.LastSeen = &seen
	}
	return body
}

// optional maps "" to a JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
