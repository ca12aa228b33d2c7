package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure AgentService implements the interface.
var _ driving.AgentService = (*AgentService)(nil)

// AgentService tracks agent presence in an expiring key-value entry.
type AgentService struct {
	store      driven.PresenceStore
	agentID    string
	staleAfter time.Duration
	now        func() time.Time
}

// NewAgentService creates a new agent presence service.
// A non-positive staleAfter uses domain.DefaultPresenceStaleAfter.
func NewAgentService(store driven.PresenceStore, agentID string, staleAfter time.Duration) *AgentService {
	if agentID == "" {
		agentID = domain.DefaultAgentID
	}
	if staleAfter <= 0 {
		staleAfter = domain.DefaultPresenceStaleAfter
	}
	return &AgentService{store: store, agentID: agentID, staleAfter: staleAfter, now: time.Now}
}

// Status reads the presence entry and applies the staleness cutoff.
func (s *AgentService) Status(ctx context.Context) domain.AgentPresence {
	now := s.now().UTC()

	status, err := s.store.GetStatus(ctx, s.agentID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AgentPresence{Sessions: []string{}, CheckedAt: now}
	}
	if err != nil {
		logger.Warn("Failed to check agent status: %v", err)
		return domain.AgentPresence{
			Sessions:  []string{},
			CheckedAt: now,
			Error:     "Status check failed",
		}
	}

	return status.Presence(now, s.staleAfter)
}

// Update records the agent's current status with the current time.
func (s *AgentService) Update(ctx context.Context, active bool, sessions []string) error {
	if sessions == nil {
		sessions = []string{}
	}
	status := domain.AgentStatus{
		Active:    active,
		Sessions:  sessions,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.PutStatus(ctx, s.agentID, status); err != nil {
		return fmt.Errorf("update agent status: %w", err)
	}
	return nil
}
