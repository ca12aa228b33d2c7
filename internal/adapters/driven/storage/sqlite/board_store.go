package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

const projectColumns = `id, column_id, title, description, assignee, priority, due_date,
	position, labels, created_at, updated_at`

const taskColumns = `id, project_id, title, completed, position, created_at, updated_at`

// ==================== Board Store ====================

// boardStore implements driven.BoardStore.
type boardStore struct {
	store *Store
}

var _ driven.BoardStore = (*boardStore)(nil)

// FirstBoard returns the oldest board with nested columns, projects and tasks.
func (s *boardStore) FirstBoard(ctx context.Context) (*domain.Board, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM boards ORDER BY created_at LIMIT 1
	`)

	var board domain.Board
	var createdAt, updatedAt string
	if err := row.Scan(&board.ID, &board.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}

	var err error
	if board.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if board.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	board.Columns, err = s.store.listColumns(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// CreateBoard inserts a board and its columns in one transaction.
func (s *boardStore) CreateBoard(ctx context.Context, board *domain.Board) error {
	now := time.Now().UTC()
	if board.ID == "" {
		board.ID = uuid.New().String()
	}
	board.CreatedAt, board.UpdatedAt = now, now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO boards (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
	`, board.ID, board.Name, formatTime(now), formatTime(now)); err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}

	for i := range board.Columns {
		col := &board.Columns[i]
		if col.ID == "" {
			col.ID = uuid.New().String()
		}
		col.BoardID = board.ID
		col.CreatedAt = now
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO board_columns (id, board_id, name, position, color, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, col.ID, col.BoardID, col.Name, col.Position, col.Color, formatTime(now)); err != nil {
			return fmt.Errorf("inserting column %s: %w", col.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing board: %w", err)
	}
	return nil
}

// ListColumns returns every column in position order with nested projects.
func (s *boardStore) ListColumns(ctx context.Context) ([]domain.Column, error) {
	return s.store.listColumns(ctx, "")
}

// listColumns loads columns, optionally for one board, with their projects and tasks.
func (s *Store) listColumns(ctx context.Context, boardID string) ([]domain.Column, error) {
	query := `SELECT id, board_id, name, position, color, created_at FROM board_columns`
	var args []any
	if boardID != "" {
		query += ` WHERE board_id = ?`
		args = append(args, boardID)
	}
	query += ` ORDER BY position, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	columns := make([]domain.Column, 0)
	for rows.Next() {
		var col domain.Column
		var createdAt string
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Name, &col.Position, &col.Color, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		if col.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	projects, err := s.listProjects(ctx, "")
	if err != nil {
		return nil, err
	}
	byColumn := make(map[string][]domain.Project)
	for _, p := range projects {
		byColumn[p.ColumnID] = append(byColumn[p.ColumnID], p)
	}
	for i := range columns {
		columns[i].Projects = byColumn[columns[i].ID]
		if columns[i].Projects == nil {
			columns[i].Projects = []domain.Project{}
		}
	}

	return columns, nil
}

// ==================== Project Store ====================

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

// SaveProject stores or updates a project. Tasks are not written.
func (s *projectStore) SaveProject(ctx context.Context, project *domain.Project) error {
	labels := project.Labels
	if labels == nil {
		labels = []string{}
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("marshalling labels: %w", err)
	}

	now := time.Now().UTC()
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			column_id = excluded.column_id,
			title = excluded.title,
			description = excluded.description,
			assignee = excluded.assignee,
			priority = excluded.priority,
			due_date = excluded.due_date,
			position = excluded.position,
			labels = excluded.labels,
			updated_at = excluded.updated_at
	`, project.ID, project.ColumnID, project.Title, project.Description, project.Assignee,
		string(project.Priority), nullTime(project.DueDate), project.Position, string(labelsJSON),
		formatTime(project.CreatedAt), formatTime(project.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// GetProject returns a project with its tasks.
func (s *projectStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	project.Tasks, err = s.store.listTasks(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns projects in position order.
func (s *projectStore) ListProjects(ctx context.Context, columnID string) ([]domain.Project, error) {
	return s.store.listProjects(ctx, columnID)
}

// DeleteProject removes a project and its tasks.
func (s *projectStore) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// MaxProjectPosition returns the highest position in a column, or -1.
func (s *projectStore) MaxProjectPosition(ctx context.Context, columnID string) (int, error) {
	var pos int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) FROM projects WHERE column_id = ?", columnID)
	if err := row.Scan(&pos); err != nil {
		return 0, fmt.Errorf("querying project position: %w", err)
	}
	return pos, nil
}

// ProjectsDueBetween returns projects due in [from, to), earliest first.
func (s *projectStore) ProjectsDueBetween(ctx context.Context, from, to time.Time) ([]domain.Project, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE due_date IS NOT NULL AND due_date >= ? AND due_date < ?
		ORDER BY due_date
	`, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("querying due projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (s *Store) listProjects(ctx context.Context, columnID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if columnID != "" {
		query += ` WHERE column_id = ?`
		args = append(args, columnID)
	}
	query += ` ORDER BY position, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}

	tasks, err := s.listTasks(ctx, "")
	if err != nil {
		return nil, err
	}
	byProject := make(map[string][]domain.Task)
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	for i := range projects {
		projects[i].Tasks = byProject[projects[i].ID]
		if projects[i].Tasks == nil {
			projects[i].Tasks = []domain.Task{}
		}
	}
	return projects, nil
}

func collectProjects(rows *sql.Rows) ([]domain.Project, error) {
	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// scanProject returns sql.ErrNoRows unwrapped so callers can map it.
func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var priority, labelsJSON, createdAt, updatedAt string
	var dueDate sql.NullString
	if err := row.Scan(&p.ID, &p.ColumnID, &p.Title, &p.Description, &p.Assignee, &priority,
		&dueDate, &p.Position, &labelsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Priority = domain.Priority(priority)
	if err := json.Unmarshal([]byte(labelsJSON), &p.Labels); err != nil {
		return nil, fmt.Errorf("unmarshalling labels: %w", err)
	}
	if p.Labels == nil {
		p.Labels = []string{}
	}

	var err error
	if p.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ==================== Task Store ====================

// taskStore implements driven.TaskStore.
type taskStore struct {
	store *Store
}

var _ driven.TaskStore = (*taskStore)(nil)

// SaveTask stores or updates a task.
func (s *taskStore) SaveTask(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			title = excluded.title,
			completed = excluded.completed,
			position = excluded.position,
			updated_at = excluded.updated_at
	`, task.ID, task.ProjectID, task.Title, task.Completed, task.Position,
		formatTime(task.CreatedAt), formatTime(task.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// GetTask returns a task.
func (s *taskStore) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return task, err
}

// ListTasks returns tasks in position order.
func (s *taskStore) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.store.listTasks(ctx, projectID)
}

// DeleteTask removes a task.
func (s *taskStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MaxTaskPosition returns the highest position in a project, or -1.
func (s *taskStore) MaxTaskPosition(ctx context.Context, projectID string) (int, error) {
	var pos int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) FROM tasks WHERE project_id = ?", projectID)
	if err := row.Scan(&pos); err != nil {
		return 0, fmt.Errorf("querying task position: %w", err)
	}
	return pos, nil
}

func (s *Store) listTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY position, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// scanTask returns sql.ErrNoRows unwrapped so callers can map it.
func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Completed, &t.Position,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
