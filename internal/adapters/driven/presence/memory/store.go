// Package memory keeps agent presence entries in an in-process expiring cache.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/mission-control/internal/adapters/driven/presence"
	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PresenceStore = (*Store)(nil)

// Store is a go-cache backed presence store. Entries are stored as JSON
// so callers never share slices with the cache.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a store whose entries expire after ttl.
// A non-positive ttl uses presence.DefaultEntryTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = presence.DefaultEntryTTL
	}
	return &Store{cache: cache.New(ttl, ttl/2)}
}

// PutStatus stores the status with the default expiry.
func (s *Store) PutStatus(_ context.Context, agentID string, status domain.AgentStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}
	s.cache.SetDefault(presence.Key(agentID), data)
	return nil
}

// GetStatus returns the stored status or domain.ErrNotFound.
func (s *Store) GetStatus(_ context.Context, agentID string) (*domain.AgentStatus, error) {
	v, ok := s.cache.Get(presence.Key(agentID))
	if !ok {
		return nil, domain.ErrNotFound
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value %T", v)
	}

	var status domain.AgentStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("unmarshalling status: %w", err)
	}
	return &status, nil
}

// Close flushes the cache.
func (s *Store) Close() error {
	s.cache.Flush()
	return nil
}
