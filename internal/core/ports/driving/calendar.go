package driving

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// CalendarService builds the weekly calendar.
type CalendarService interface {
	// Week returns events for the week containing weekOf (yyyy-MM-dd).
	// A blank weekOf means the current week.
	Week(ctx context.Context, weekOf string) (*domain.CalendarWeek, error)
}

// AgentService reports and updates agent presence.
type AgentService interface {
	// Status reads presence. Store failures are reported in the result.
	Status(ctx context.Context) domain.AgentPresence

	// Update records the agent's current status.
	Update(ctx context.Context, active bool, sessions []string) error
}
