package driving

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// ActivityService reads and writes the activity log.
type ActivityService interface {
	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)

	// Create validates and appends an entry.
	Create(ctx context.Context, params domain.NewActivityParams) (*domain.Activity, error)
}

// ActivityLogger records activities without blocking or failing the caller.
type ActivityLogger interface {
	// Log queues an entry. Failures are logged, never returned.
	Log(params domain.NewActivityParams)

	// Wait blocks until queued entries have been written.
	Wait()
}
