package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

type boardHandler struct {
	board    driving.BoardService
	projects driving.ProjectService
	tasks    driving.TaskService
}

func (h *boardHandler) register(api huma.API) {
	tags := []string{"Board"}

	huma.Register(api, huma.Operation{
		OperationID: "getBoard", Method: http.MethodGet, Path: "/api/board",
		Summary: "Get the board, creating it on first use", Tags: tags,
	}, h.getBoard)
	huma.Register(api, huma.Operation{
		OperationID: "listColumns", Method: http.MethodGet, Path: "/api/columns",
		Summary: "List columns with projects and tasks", Tags: tags,
	}, h.listColumns)

	huma.Register(api, huma.Operation{
		OperationID: "listProjects", Method: http.MethodGet, Path: "/api/projects",
		Summary: "List projects", Tags: tags,
	}, h.listProjects)
	huma.Register(api, huma.Operation{
		OperationID: "createProject", Method: http.MethodPost, Path: "/api/projects",
		Summary: "Create a project", Tags: tags, DefaultStatus: http.StatusCreated,
	}, h.createProject)
	huma.Register(api, huma.Operation{
		OperationID: "getProject", Method: http.MethodGet, Path: "/api/projects/{id}",
		Summary: "Get a project", Tags: tags,
	}, h.getProject)
	huma.Register(api, huma.Operation{
		OperationID: "updateProject", Method: http.MethodPatch, Path: "/api/projects/{id}",
		Summary: "Update a project", Tags: tags,
	}, h.updateProject)
	huma.Register(api, huma.Operation{
		OperationID: "deleteProject", Method: http.MethodDelete, Path: "/api/projects/{id}",
		Summary: "Delete a project and its tasks", Tags: tags,
	}, h.deleteProject)

	huma.Register(api, huma.Operation{
		OperationID: "listTasks", Method: http.MethodGet, Path: "/api/tasks",
		Summary: "List tasks", Tags: tags,
	}, h.listTasks)
	huma.Register(api, huma.Operation{
		OperationID: "createTask", Method: http.MethodPost, Path: "/api/tasks",
		Summary: "Create a task", Tags: tags, DefaultStatus: http.StatusCreated,
	}, h.createTask)
	huma.Register(api, huma.Operation{
		OperationID: "getTask", Method: http.MethodGet, Path: "/api/tasks/{id}",
		Summary: "Get a task", Tags: tags,
	}, h.getTask)
	huma.Register(api, huma.Operation{
		OperationID: "updateTask", Method: http.MethodPatch, Path: "/api/tasks/{id}",
		Summary: "Update a task", Tags: tags,
	}, h.updateTask)
	huma.Register(api, huma.Operation{
		OperationID: "deleteTask", Method: http.MethodDelete, Path: "/api/tasks/{id}",
		Summary: "Delete a task", Tags: tags,
	}, h.deleteTask)
}

// BoardOutput wraps the board tree.
type BoardOutput struct {
	Body BoardBody
}

// ColumnsOutput wraps the column list.
type ColumnsOutput struct {
	Body []ColumnBody
}

// IDInput is a path parameter naming a record.
type IDInput struct {
	ID string `path:"id"`
}

// DeleteOutput acknowledges a delete.
type DeleteOutput struct {
	Body struct {
		Success bool `json:"success"`
	}
}

func deleted() *DeleteOutput {
	out := &DeleteOutput{}
	out.Body.Success = true
	return out
}

func (h *boardHandler) getBoard(ctx context.Context, _ *struct{}) (*BoardOutput, error) {
	board, err := h.board.GetBoard(ctx)
	if err != nil {
		return nil, toHumaError(err, "board", "fetch")
	}
	return &BoardOutput{Body: newBoardBody(board)}, nil
}

func (h *boardHandler) listColumns(ctx context.Context, _ *struct{}) (*ColumnsOutput, error) {
	columns, err := h.board.ListColumns(ctx)
	if err != nil {
		return nil, toHumaError(err, "columns", "fetch")
	}
	return &ColumnsOutput{
		Body: lo.Map(columns, func(c domain.Column, _ int) ColumnBody { return newColumnBody(c) }),
	}, nil
}

// ListProjectsInput filters projects by column.
type ListProjectsInput struct {
	ColumnID string `query:"columnId"`
}

// ProjectsOutput wraps a project list.
type ProjectsOutput struct {
	Body []ProjectBody
}

// ProjectOutput wraps one project.
type ProjectOutput struct {
	Body ProjectBody
}

// CreateProjectInput is the create-project request.
type CreateProjectInput struct {
	Body struct {
		ColumnID    string   `json:"columnId" required:"false"`
		Title       string   `json:"title" required:"false"`
		Description string   `json:"description,omitempty"`
		Assignee    string   `json:"assignee,omitempty"`
		Priority    string   `json:"priority,omitempty"`
		DueDate     string   `json:"dueDate,omitempty" doc:"RFC 3339 timestamp or yyyy-MM-dd"`
		Labels      []string `json:"labels,omitempty"`
	}
}

// UpdateProjectInput is a partial project update. An empty dueDate clears it.
type UpdateProjectInput struct {
	ID   string `path:"id"`
	Body struct {
		ColumnID    *string   `json:"columnId,omitempty"`
		Title       *string   `json:"title,omitempty"`
		Description *string   `json:"description,omitempty"`
		Assignee    *string   `json:"assignee,omitempty"`
		Priority    *string   `json:"priority,omitempty"`
		DueDate     *string   `json:"dueDate,omitempty"`
		Position    *int      `json:"position,omitempty"`
		Labels      *[]string `json:"labels,omitempty"`
	}
}

func (h *boardHandler) listProjects(ctx context.Context, in *ListProjectsInput) (*ProjectsOutput, error) {
	projects, err := h.projects.List(ctx, in.ColumnID)
	if err != nil {
		return nil, toHumaError(err, "projects", "fetch")
	}
	return &ProjectsOutput{
		Body: lo.Map(projects, func(p domain.Project, _ int) ProjectBody { return newProjectBody(p) }),
	}, nil
}

func (h *boardHandler) getProject(ctx context.Context, in *IDInput) (*ProjectOutput, error) {
	project, err := h.projects.Get(ctx, in.ID)
	if err != nil {
		return nil, toHumaError(err, "project", "fetch")
	}
	return &ProjectOutput{Body: newProjectBody(*project)}, nil
}

func (h *boardHandler) createProject(ctx context.Context, in *CreateProjectInput) (*ProjectOutput, error) {
	params := domain.NewProjectParams{
		ColumnID:    in.Body.ColumnID,
		Title:       in.Body.Title,
		Description: in.Body.Description,
		Assignee:    in.Body.Assignee,
		Priority:    domain.Priority(in.Body.Priority),
		Labels:      in.Body.Labels,
	}
	if in.Body.DueDate != "" {
		due, err := parseTimestamp(in.Body.DueDate)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid dueDate")
		}
		params.DueDate = &due
	}

	project, err := h.projects.Create(ctx, params)
	if err != nil {
		return nil, toHumaError(err, "project", "create")
	}
	return &ProjectOutput{Body: newProjectBody(*project)}, nil
}

func (h *boardHandler) updateProject(ctx context.Context, in *UpdateProjectInput) (*ProjectOutput, error) {
	b := in.Body
	patch := domain.ProjectPatch{
		ColumnID:    b.ColumnID,
		Title:       b.Title,
		Description: b.Description,
		Assignee:    b.Assignee,
		Position:    b.Position,
		Labels:      b.Labels,
	}
	if b.Priority != nil {
		priority := domain.Priority(*b.Priority)
		patch.Priority = &priority
	}
	if b.DueDate != nil {
		if strings.TrimSpace(*b.DueDate) == "" {
			patch.ClearDueDate = true
		} else {
			due, err := parseTimestamp(*b.DueDate)
			if err != nil {
				return nil, huma.Error400BadRequest("Invalid dueDate")
			}
			patch.DueDate = &due
		}
	}

	project, err := h.projects.Update(ctx, in.ID, patch)
	if err != nil {
		return nil, toHumaError(err, "project", "update")
	}
	return &ProjectOutput{Body: newProjectBody(*project)}, nil
}

func (h *boardHandler) deleteProject(ctx context.Context, in *IDInput) (*DeleteOutput, error) {
	if err := h.projects.Delete(ctx, in.ID); err != nil {
		return nil, toHumaError(err, "project", "delete")
	}
	return deleted(), nil
}

// ListTasksInput filters tasks by project.
type ListTasksInput struct {
	ProjectID string `query:"projectId"`
}

// TasksOutput wraps a task list.
type TasksOutput struct {
	Body []TaskBody
}

// TaskOutput wraps one task.
type TaskOutput struct {
	Body TaskBody
}

// CreateTaskInput is the create-task request.
type CreateTaskInput struct {
	Body struct {
		ProjectID string `json:"projectId" required:"false"`
		Title     string `json:"title" required:"false"`
	}
}

// UpdateTaskInput is a partial task update.
type UpdateTaskInput struct {
	ID   string `path:"id"`
	Body struct {
		ProjectID *string `json:"projectId,omitempty"`
		Title     *string `json:"title,omitempty"`
		Completed *bool   `json:"completed,omitempty"`
		Position  *int    `json:"position,omitempty"`
	}
}

func (h *boardHandler) listTasks(ctx context.Context, in *ListTasksInput) (*TasksOutput, error) {
	tasks, err := h.tasks.List(ctx, in.ProjectID)
	if err != nil {
		return nil, toHumaError(err, "tasks", "fetch")
	}
	return &TasksOutput{
		Body: lo.Map(tasks, func(t domain.Task, _ int) TaskBody { return newTaskBody(t) }),
	}, nil
}

func (h *boardHandler) getTask(ctx context.Context, in *IDInput) (*TaskOutput, error) {
	task, err := h.tasks.Get(ctx, in.ID)
	if err != nil {
		return nil, toHumaError(err, "task", "fetch")
	}
	return &TaskOutput{Body: newTaskBody(*task)}, nil
}

func (h *boardHandler) createTask(ctx context.Context, in *CreateTaskInput) (*TaskOutput, error) {
	task, err := h.tasks.Create(ctx, domain.NewTaskParams{
		ProjectID: in.Body.ProjectID,
		Title:     in.Body.Title,
	})
	if err != nil {
		return nil, toHumaError(err, "task", "create")
	}
	return &TaskOutput{Body: newTaskBody(*task)}, nil
}

func (h *boardHandler) updateTask(ctx context.Context, in *UpdateTaskInput) (*TaskOutput, error) {
	task, err := h.tasks.Update(ctx, in.ID, domain.TaskPatch{
		ProjectID: in.Body.ProjectID,
		Title:     in.Body.Title,
		Completed: in.Body.Completed,
		Position:  in.Body.Position,
	})
	if err != nil {
		return nil, toHumaError(err, "task", "update")
	}
	return &TaskOutput{Body: newTaskBody(*task)}, nil
}

func (h *boardHandler) deleteTask(ctx context.Context, in *IDInput) (*DeleteOutput, error) {
	if err := h.tasks.Delete(ctx, in.ID); err != nil {
		return nil, toHumaError(err, "task", "delete")
	}
	return deleted(), nil
}

// timestampLayouts are tried in order. Zoneless date-times are local;
// bare dates are UTC midnight.
var timestampLayouts = []struct {
	layout string
	local  bool
}{
	{layout: time.RFC3339Nano},
	{layout: "2006-01-02T15:04:05", local: true},
	{layout: "2006-01-02T15:04", local: true},
	{layout: domain.DateLayout},
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, l := range timestampLayouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		t, err := time.ParseInLocation(l.layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
