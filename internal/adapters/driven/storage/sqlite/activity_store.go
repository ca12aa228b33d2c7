package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

const activityColumns = `id, action, category, title, description, metadata, session_id, status, timestamp`

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// activityStore implements driven.ActivityStore.
type activityStore struct {
	store *Store
}

var _ driven.ActivityStore = (*activityStore)(nil)

// AppendActivity inserts an activity entry.
func (s *activityStore) AppendActivity(ctx context.Context, activity *domain.Activity) error {
	var metadata sql.NullString
	if activity.Metadata != nil {
		data, err := json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}
		metadata = sql.NullString{String: string(data), Valid: true}
	}

	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, activity.ID, activity.Action, activity.Category, activity.Title, activity.Description,
		metadata, activity.SessionID, activity.Status, formatTime(activity.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

// ListActivities returns entries matching the filter, newest first.
func (s *activityStore) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Action != "" {
		where = append(where, "action = ?")
		args = append(args, filter.Action)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Since != nil {
		where = append(where, "timestamp >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	query := `SELECT ` + activityColumns + ` FROM activities`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()
	return collectActivities(rows)
}

func collectActivities(rows *sql.Rows) ([]domain.Activity, error) {
	activities := make([]domain.Activity, 0)
	for rows.Next() {
		var a domain.Activity
		var metadata sql.NullString
		var ts string
		if err := rows.Scan(&a.ID, &a.Action, &a.Category, &a.Title, &a.Description,
			&metadata, &a.SessionID, &a.Status, &ts); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if metadata.Valid && metadata.String != "" && metadata.String != jsonNull {
			if err := json.Unmarshal([]byte(metadata.String), &a.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshalling metadata: %w", err)
			}
		}
		var err error
		if a.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}
