package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.BoardStore    = (*Store)(nil)
	_ driven.ProjectStore  = (*Store)(nil)
	_ driven.TaskStore     = (*Store)(nil)
	_ driven.ActivityStore = (*Store)(nil)
	_ driven.SearchIndex   = (*Store)(nil)
)

// Store is an in-memory implementation of the board, activity and search ports.
type Store struct {
	mu         sync.RWMutex
	boards     map[string]domain.Board
	columns    map[string]domain.Column
	projects   map[string]domain.Project
	tasks      map[string]domain.Task
	activities []domain.Activity
	now        func() time.Time
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		boards:   make(map[string]domain.Board),
		columns:  make(map[string]domain.Column),
		projects: make(map[string]domain.Project),
		tasks:    make(map[string]domain.Task),
		now:      time.Now,
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// --- Boards ---

// FirstBoard returns the oldest board with nested columns, projects and tasks.
func (s *Store) FirstBoard(_ context.Context) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var first *domain.Board
	for _, b := range s.boards {
		if first == nil || b.CreatedAt.Before(first.CreatedAt) {
			board := b
			first = &board
		}
	}
	if first == nil {
		return nil, domain.ErrNotFound
	}

	first.Columns = s.columnsLocked(first.ID)
	return first, nil
}

// CreateBoard inserts a board and its columns.
func (s *Store) CreateBoard(_ context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if board.ID == "" {
		board.ID = uuid.New().String()
	}
	board.CreatedAt, board.UpdatedAt = now, now

	for i := range board.Columns {
		col := &board.Columns[i]
		if col.ID == "" {
			col.ID = uuid.New().String()
		}
		col.BoardID = board.ID
		col.CreatedAt = now
		stored := *col
		stored.Projects = nil
		s.columns[col.ID] = stored
	}

	stored := *board
	stored.Columns = nil
	s.boards[board.ID] = stored
	return nil
}

// ListColumns returns every column in position order with nested projects.
func (s *Store) ListColumns(_ context.Context) ([]domain.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columnsLocked(""), nil
}

func (s *Store) columnsLocked(boardID string) []domain.Column {
	cols := make([]domain.Column, 0, len(s.columns))
	for _, c := range s.columns {
		if boardID != "" && c.BoardID != boardID {
			continue
		}
		c.Projects = s.projectsLocked(c.ID)
		cols = append(cols, c)
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })
	return cols
}

// --- Projects ---

// SaveProject inserts or updates a project.
func (s *Store) SaveProject(_ context.Context, project *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if existing, ok := s.projects[project.ID]; ok {
		project.CreatedAt = existing.CreatedAt
	} else if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	stored := *project
	stored.Tasks = nil
	stored.Labels = append([]string(nil), project.Labels...)
	s.projects[project.ID] = stored
	return nil
}

// GetProject returns a project with its tasks.
func (s *Store) GetProject(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Tasks = s.tasksLocked(p.ID)
	return &p, nil
}

// ListProjects returns projects in position order.
func (s *Store) ListProjects(_ context.Context, columnID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsLocked(columnID), nil
}

func (s *Store) projectsLocked(columnID string) []domain.Project {
	projects := make([]domain.Project, 0)
	for _, p := range s.projects {
		if columnID != "" && p.ColumnID != columnID {
			continue
		}
		p.Tasks = s.tasksLocked(p.ID)
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Position != projects[j].Position {
			return projects[i].Position < projects[j].Position
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects
}

// DeleteProject removes a project and its tasks.
func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
	return nil
}

// MaxProjectPosition returns the highest position in a column, or -1.
func (s *Store) MaxProjectPosition(_ context.Context, columnID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxPos := -1
	for _, p := range s.projects {
		if p.ColumnID == columnID && p.Position > maxPos {
			maxPos = p.Position
		}
	}
	return maxPos, nil
}

// ProjectsDueBetween returns projects due in [from, to).
func (s *Store) ProjectsDueBetween(_ context.Context, from, to time.Time) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []domain.Project
	for _, p := range s.projects {
		if p.DueDate == nil || p.DueDate.Before(from) || !p.DueDate.Before(to) {
			continue
		}
		due = append(due, p)
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].DueDate.Before(*due[j].DueDate) })
	return due, nil
}

// --- Tasks ---

// SaveTask inserts or updates a task.
func (s *Store) SaveTask(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if existing, ok := s.tasks[task.ID]; ok {
		task.CreatedAt = existing.CreatedAt
	} else if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	s.tasks[task.ID] = *task
	return nil
}

// GetTask returns a task.
func (s *Store) GetTask(_ context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// ListTasks returns tasks in position order.
func (s *Store) ListTasks(_ context.Context, projectID string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksLocked(projectID), nil
}

func (s *Store) tasksLocked(projectID string) []domain.Task {
	tasks := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// MaxTaskPosition returns the highest position in a project, or -1.
func (s *Store) MaxTaskPosition(_ context.Context, projectID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxPos := -1
	for _, t := range s.tasks {
		if t.ProjectID == projectID && t.Position > maxPos {
			maxPos = t.Position
		}
	}
	return maxPos, nil
}

// --- Activities ---

// AppendActivity inserts an activity entry.
func (s *Store) AppendActivity(_ context.Context, activity *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = s.now().UTC()
	}
	s.activities = append(s.activities, *activity)
	return nil
}

// ListActivities returns entries matching the filter, newest first.
func (s *Store) ListActivities(_ context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.newestFirstLocked(func(a domain.Activity) bool {
		switch {
		case filter.Category != "" && a.Category != filter.Category:
			return false
		case filter.Action != "" && a.Action != filter.Action:
			return false
		case filter.Status != "" && a.Status != filter.Status:
			return false
		case filter.Since != nil && a.Timestamp.Before(*filter.Since):
			return false
		}
		return true
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *Store) newestFirstLocked(keep func(domain.Activity) bool) []domain.Activity {
	out := make([]domain.Activity, 0)
	for _, a := range s.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// --- Search ---

// SearchProjects matches project title or description.
func (s *Store) SearchProjects(_ context.Context, query string, limit int) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Project
	for _, p := range s.projectsLocked("") {
		if containsFold(p.Title, query) || containsFold(p.Description, query) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SearchTasks matches task title or parent project title.
func (s *Store) SearchTasks(_ context.Context, query string, limit int) ([]domain.TaskMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TaskMatch
	for _, t := range s.tasksLocked("") {
		projectTitle := s.projects[t.ProjectID].Title
		if containsFold(t.Title, query) || containsFold(projectTitle, query) {
			out = append(out, domain.TaskMatch{Task: t, ProjectTitle: projectTitle})
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SearchActivities matches title, description, action or category, newest first.
func (s *Store) SearchActivities(_ context.Context, query string, limit int) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.newestFirstLocked(func(a domain.Activity) bool {
		return containsFold(a.Title, query) ||
			containsFold(a.Description, query) ||
			containsFold(a.Action, query) ||
			containsFold(a.Category, query)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
