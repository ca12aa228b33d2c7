// Package redis stores agent presence entries in Redis with an expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/mission-control/internal/adapters/driven/presence"
	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.PresenceStore = (*Store)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int

	// TTL is the entry expiry. Zero means presence.DefaultEntryTTL.
	TTL time.Duration
}

// Store is a Redis-backed presence store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to Redis and verifies the connection with PING.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", domain.ErrPresenceUnavailable)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithFields(logger.Fields{
			"address":  opts.Addr,
			"database": opts.DB,
		}).Error("Failed to connect to Redis")
		client.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrPresenceUnavailable, err)
	}

	return NewStoreFromClient(client, opts.TTL), nil
}

// NewStoreFromClient wraps an existing client.
func NewStoreFromClient(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = presence.DefaultEntryTTL
	}
	return &Store{client: client, ttl: ttl}
}

// PutStatus stores the status as JSON with the configured expiry.
func (s *Store) PutStatus(ctx context.Context, agentID string, status domain.AgentStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}
	if err := s.client.Set(ctx, presence.Key(agentID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPresenceUnavailable, err)
	}
	return nil
}

// GetStatus returns the stored status or domain.ErrNotFound.
func (s *Store) GetStatus(ctx context.Context, agentID string) (*domain.AgentStatus, error) {
	data, err := s.client.Get(ctx, presence.Key(agentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPresenceUnavailable, err)
	}

	var status domain.AgentStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("unmarshalling status: %w", err)
	}
	return &status, nil
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
