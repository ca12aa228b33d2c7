package driven

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// PresenceStore keeps the agent status as an expiring key-value entry.
type PresenceStore interface {
	// PutStatus stores the status under agentID, replacing any previous entry.
	PutStatus(ctx context.Context, agentID string, status domain.AgentStatus) error

	// GetStatus returns the stored status, or domain.ErrNotFound when the
	// entry is missing or has expired.
	GetStatus(ctx context.Context, agentID string) (*domain.AgentStatus, error)

	// Close releases resources.
	Close() error
}

// CronSource lists scheduled jobs from an external scheduler.
type CronSource interface {
	// ListJobs fetches the current job list.
	ListJobs(ctx context.Context) ([]domain.CronJob, error)
}
