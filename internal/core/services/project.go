package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService manages projects and records their creation in the activity log.
type ProjectService struct {
	projects driven.ProjectStore
	activity driving.ActivityLogger
}

// NewProjectService creates a new project service.
// The activity logger is optional (can be nil).
func NewProjectService(projects driven.ProjectStore, activity driving.ActivityLogger) *ProjectService {
	return &ProjectService{projects: projects, activity: activity}
}

// List returns projects in position order, optionally restricted to one column.
func (s *ProjectService) List(ctx context.Context, columnID string) ([]domain.Project, error) {
	projects, err := s.projects.ListProjects(ctx, columnID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project with its tasks.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetProject(ctx, id)
}

// Create appends a project to the end of its column.
func (s *ProjectService) Create(ctx context.Context, params domain.NewProjectParams) (*domain.Project, error) {
	title := strings.TrimSpace(params.Title)
	if params.ColumnID == "" || title == "" {
		return nil, fmt.Errorf("%w: columnId and title are required", domain.ErrInvalidInput)
	}

	priority := params.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrInvalidInput, priority)
	}

	maxPos, err := s.projects.MaxProjectPosition(ctx, params.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("project position: %w", err)
	}

	labels := params.Labels
	if labels == nil {
		labels = []string{}
	}

	project := &domain.Project{
		ColumnID:    params.ColumnID,
		Title:       title,
		Description: params.Description,
		Assignee:    params.Assignee,
		Priority:    priority,
		DueDate:     params.DueDate,
		Position:    maxPos + 1,
		Labels:      labels,
		Tasks:       []domain.Task{},
	}
	if err := s.projects.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if s.activity != nil {
		s.activity.Log(domain.NewActivityParams{
			Action:      "create",
			Category:    "project",
			Title:       fmt.Sprintf("Created project %q", project.Title),
			Description: project.Description,
			Metadata: map[string]any{
				"projectId": project.ID,
				"columnId":  project.ColumnID,
				"priority":  project.Priority.String(),
			},
		})
	}

	return project, nil
}

// Update applies a partial update. Moving columns keeps the given position.
func (s *ProjectService) Update(
	ctx context.Context, id string, patch domain.ProjectPatch,
) (*domain.Project, error) {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrInvalidInput, *patch.Priority)
	}

	patch.Apply(project)
	if err := s.projects.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes a project and its tasks.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.projects.DeleteProject(ctx, id)
}
