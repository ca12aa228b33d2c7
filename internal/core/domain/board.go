package domain

import "time"

// Priority ranks a project's urgency.
type Priority string

// Available priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// Board is the top-level kanban container.
type Board struct {
	ID        string
	Name      string
	Columns   []Column
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Column is a board lane holding projects ordered by position.
type Column struct {
	ID       string
	BoardID  string
	Name     string
	Position int

	// Color is a hex colour such as "#6b7280". Empty means unset.
	Color string

	Projects  []Project
	CreatedAt time.Time
}

// Project is a card on the board.
type Project struct {
	ID          string
	ColumnID    string
	Title       string
	Description string
	Assignee    string
	Priority    Priority
	DueDate     *time.Time
	Position    int
	Labels      []string
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a checklist item within a project.
type Task struct {
	ID        string
	ProjectID string
	Title     string
	Completed bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBoardName is the name of the board created on first access.
const DefaultBoardName = "Mission Control"

// ColumnTemplate describes a column created with the default board.
type ColumnTemplate struct {
	Name  string
	Color string
}

// DefaultColumns returns the columns of a freshly created board, in order.
func DefaultColumns() []ColumnTemplate {
	return []ColumnTemplate{
		{Name: "Backlog", Color: "#6b7280"},
		{Name: "To Do", Color: "#6130ba"},
		{Name: "In Progress", Color: "#fd4987"},
		{Name: "Done", Color: "#22c55e"},
	}
}

// NewProjectParams holds the fields accepted when creating a project.
type NewProjectParams struct {
	ColumnID    string
	Title       string
	Description string
	Assignee    string
	Priority    Priority
	DueDate     *time.Time
	Labels      []string
}

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	ColumnID    *string
	Title       *string
	Description *string
	Assignee    *string
	Priority    *Priority
	Position    *int
	Labels      *[]string

	// DueDate sets the due date when non-nil.
	DueDate *time.Time

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// Apply copies the set fields onto p.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.ColumnID != nil {
		p.ColumnID = *pp.ColumnID
	}
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Assignee != nil {
		p.Assignee = *pp.Assignee
	}
	if pp.Priority != nil {
		p.Priority = *pp.Priority
	}
	if pp.Position != nil {
		p.Position = *pp.Position
	}
	if pp.Labels != nil {
		p.Labels = append([]string(nil), (*pp.Labels)...)
	}
	if pp.DueDate != nil {
		due := *pp.DueDate
		p.DueDate = &due
	}
	if pp.ClearDueDate {
		p.DueDate = nil
	}
}

// NewTaskParams holds the fields accepted when creating a task.
type NewTaskParams struct {
	ProjectID string
	Title     string
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	ProjectID *string
	Title     *string
	Completed *bool
	Position  *int
}

// Apply copies the set fields onto t.
func (tp TaskPatch) Apply(t *Task) {
	if tp.ProjectID != nil {
		t.ProjectID = *tp.ProjectID
	}
	if tp.Title != nil {
		t.Title = *tp.Title
	}
	if tp.Completed != nil {
		t.Completed = *tp.Completed
	}
	if tp.Position != nil {
		t.Position = *tp.Position
	}
}
