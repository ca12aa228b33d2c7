package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

// searchIndex implements driven.SearchIndex with LIKE substring matching.
// Both sides are folded with unicode_lower so matching is case-insensitive
// beyond ASCII.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

// SearchProjects matches project title or description.
func (s *searchIndex) SearchProjects(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	pattern := likePattern(query)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE unicode_lower(title) LIKE ? ESCAPE '\' OR unicode_lower(description) LIKE ? ESCAPE '\'
		ORDER BY updated_at DESC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// SearchTasks matches task title or parent project title.
func (s *searchIndex) SearchTasks(ctx context.Context, query string, limit int) ([]domain.TaskMatch, error) {
	pattern := likePattern(query)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT t.id, t.project_id, t.title, t.completed, t.position, t.created_at, t.updated_at,
			COALESCE(p.title, '')
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE unicode_lower(t.title) LIKE ? ESCAPE '\' OR unicode_lower(p.title) LIKE ? ESCAPE '\'
		ORDER BY t.updated_at DESC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	defer rows.Close()

	matches := make([]domain.TaskMatch, 0)
	for rows.Next() {
		var (
			m                    domain.TaskMatch
			createdAt, updatedAt string
		)
		if err := rows.Scan(&m.Task.ID, &m.Task.ProjectID, &m.Task.Title, &m.Task.Completed,
			&m.Task.Position, &createdAt, &updatedAt, &m.ProjectTitle); err != nil {
			return nil, fmt.Errorf("scanning task match: %w", err)
		}
		if m.Task.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if m.Task.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task matches: %w", err)
	}
	return matches, nil
}

// SearchActivities matches title, description, action or category, newest first.
func (s *searchIndex) SearchActivities(ctx context.Context, query string, limit int) ([]domain.Activity, error) {
	pattern := likePattern(query)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+activityColumns+` FROM activities
		WHERE unicode_lower(title) LIKE ? ESCAPE '\'
			OR unicode_lower(description) LIKE ? ESCAPE '\'
			OR unicode_lower(action) LIKE ? ESCAPE '\'
			OR unicode_lower(category) LIKE ? ESCAPE '\'
		ORDER BY timestamp DESC
		LIMIT ?
	`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching activities: %w", err)
	}
	defer rows.Close()
	return collectActivities(rows)
}
