package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// Ensure TaskService implements the interface.
var _ driving.TaskService = (*TaskService)(nil)

// TaskService manages the checklist tasks of projects.
type TaskService struct {
	tasks    driven.TaskStore
	projects driven.ProjectStore
	activity driving.ActivityLogger
}

// NewTaskService creates a new task service.
// The activity logger is optional (can be nil).
func NewTaskService(
	tasks driven.TaskStore, projects driven.ProjectStore, activity driving.ActivityLogger,
) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, activity: activity}
}

// List returns tasks in position order, optionally restricted to one project.
func (s *TaskService) List(ctx context.Context, projectID string) ([]domain.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, id)
}

// Create appends a task to the end of its project.
func (s *TaskService) Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error) {
	title := strings.TrimSpace(params.Title)
	if params.ProjectID == "" || title == "" {
		return nil, fmt.Errorf("%w: projectId and title are required", domain.ErrInvalidInput)
	}

	if _, err := s.projects.GetProject(ctx, params.ProjectID); err != nil {
		return nil, fmt.Errorf("task project: %w", err)
	}

	maxPos, err := s.tasks.MaxTaskPosition(ctx, params.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("task position: %w", err)
	}

	task := &domain.Task{
		ProjectID: params.ProjectID,
		Title:     title,
		Position:  maxPos + 1,
	}
	if err := s.tasks.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies a partial update. Completing a task is logged as an activity.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}

	wasCompleted := task.Completed
	patch.Apply(task)
	if err := s.tasks.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if s.activity != nil && task.Completed && !wasCompleted {
		s.activity.Log(domain.NewActivityParams{
			Action:   "complete",
			Category: "task",
			Title:    fmt.Sprintf("Completed task %q", task.Title),
			Metadata: map[string]any{
				"taskId":    task.ID,
				"projectId": task.ProjectID,
			},
		})
	}

	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.DeleteTask(ctx, id)
}
