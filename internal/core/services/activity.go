package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure activity types implement the interfaces.
var (
	_ driving.ActivityService = (*ActivityService)(nil)
	_ driving.ActivityLogger  = (*ActivityLogger)(nil)
)

// activityWriteTimeout bounds a single background activity write.
const activityWriteTimeout = 5 * time.Second

// ActivityService reads and writes the activity log.
type ActivityService struct {
	store driven.ActivityStore
	now   func() time.Time
}

// NewActivityService creates a new activity service.
func NewActivityService(store driven.ActivityStore) *ActivityService {
	return &ActivityService{store: store, now: time.Now}
}

// List returns entries matching the filter, newest first.
// A non-positive limit uses the default; larger ones are capped.
func (s *ActivityService) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultActivityLimit
	}
	filter.Limit = domain.ClampActivityLimit(filter.Limit)

	activities, err := s.store.ListActivities(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Create validates and appends an entry.
func (s *ActivityService) Create(ctx context.Context, params domain.NewActivityParams) (*domain.Activity, error) {
	if strings.TrimSpace(params.Action) == "" ||
		strings.TrimSpace(params.Category) == "" ||
		strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: missing required fields: action, category, title", domain.ErrInvalidInput)
	}

	activity := s.newActivity(params)
	if err := s.store.AppendActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return activity, nil
}

func (s *ActivityService) newActivity(params domain.NewActivityParams) *domain.Activity {
	status := params.Status
	if status == "" {
		status = domain.DefaultActivityStatus
	}
	ts := params.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	return &domain.Activity{
		Action:      params.Action,
		Category:    params.Category,
		Title:       params.Title,
		Description: params.Description,
		Metadata:    params.Metadata,
		SessionID:   params.SessionID,
		Status:      status,
		Timestamp:   ts.UTC(),
	}
}

// ActivityLogger writes activity entries in the background.
// Callers are never blocked or failed by the write.
type ActivityLogger struct {
	service *ActivityService
	wg      sync.WaitGroup
}

// NewActivityLogger creates a fire-and-forget logger over the activity service.
func NewActivityLogger(service *ActivityService) *ActivityLogger {
	return &ActivityLogger{service: service}
}

// Log starts a background write. Errors are logged and dropped.
func (l *ActivityLogger) Log(params domain.NewActivityParams) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Activity logging panicked: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
		defer cancel()

		if _, err := l.service.Create(ctx, params); err != nil {
			logger.Error("Failed to log activity %s/%s: %v", params.Category, params.Action, err)
		}
	}()
}

// Wait blocks until every started write has finished.
func (l *ActivityLogger) Wait() {
	l.wg.Wait()
}
