package driving

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// BoardService exposes the kanban board.
type BoardService interface {
	// GetBoard returns the board, creating the default one on first use.
	GetBoard(ctx context.Context) (*domain.Board, error)

	// ListColumns returns every column with nested projects and tasks.
	ListColumns(ctx context.Context) ([]domain.Column, error)
}

// ProjectService manages projects on the board.
type ProjectService interface {
	List(ctx context.Context, columnID string) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, params domain.NewProjectParams) (*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskService manages tasks within projects.
type TaskService interface {
	List(ctx context.Context, projectID string) ([]domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
