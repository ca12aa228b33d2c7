package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// BoardStore persists boards and their columns.
type BoardStore interface {
	// FirstBoard returns the oldest board with columns, projects and tasks
	// nested in position order. Returns domain.ErrNotFound when no board exists.
	FirstBoard(ctx context.Context) (*domain.Board, error)

	// CreateBoard inserts a board and its columns, assigning IDs.
	CreateBoard(ctx context.Context, board *domain.Board) error

	// ListColumns returns every column in position order with nested projects.
	ListColumns(ctx context.Context) ([]domain.Column, error)
}

// ProjectStore persists projects.
type ProjectStore interface {
	// SaveProject inserts or updates a project. A blank ID is assigned.
	SaveProject(ctx context.Context, project *domain.Project) error

	// GetProject returns a project with its tasks. Returns domain.ErrNotFound.
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// ListProjects returns projects in position order, optionally for one column.
	ListProjects(ctx context.Context, columnID string) ([]domain.Project, error)

	// DeleteProject removes a project and its tasks. Returns domain.ErrNotFound.
	DeleteProject(ctx context.Context, id string) error

	// MaxProjectPosition returns the highest position in a column, or -1 when empty.
	MaxProjectPosition(ctx context.Context, columnID string) (int, error)

	// ProjectsDueBetween returns projects due in [from, to).
	ProjectsDueBetween(ctx context.Context, from, to time.Time) ([]domain.Project, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	// SaveTask inserts or updates a task. A blank ID is assigned.
	SaveTask(ctx context.Context, task *domain.Task) error

	// GetTask returns a task. Returns domain.ErrNotFound.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks returns tasks in position order, optionally for one project.
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)

	// DeleteTask removes a task. Returns domain.ErrNotFound.
	DeleteTask(ctx context.Context, id string) error

	// MaxTaskPosition returns the highest position in a project, or -1 when empty.
	MaxTaskPosition(ctx context.Context, projectID string) (int, error)
}

// ActivityStore persists the append-only activity log.
type ActivityStore interface {
	// AppendActivity inserts an entry. A blank ID is assigned.
	AppendActivity(ctx context.Context, activity *domain.Activity) error

	// ListActivities returns entries matching the filter, newest first.
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)
}
