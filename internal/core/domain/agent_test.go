package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentStatus_Presence_Fresh(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	status := AgentStatus{
		Active:    true,
		Sessions:  []string{"s1", "s2"},
		UpdatedAt: now.Add(-90 * time.Second),
	}

	p := status.Presence(now, DefaultPresenceStaleAfter)

	assert.True(t, p.Active)
	assert.Equal(t, []string{"s1", "s2"}, p.Sessions)
	assert.Equal(t, 2, p.SessionCount)
	require.NotNil(t, p.LastSeen)
	assert.Equal(t, status.UpdatedAt, *p.LastSeen)
	assert.Equal(t, now, p.CheckedAt)
}

func TestAgentStatus_Presence_Stale(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	status := AgentStatus{
		Active:    true,
		Sessions:  []string{"s1"},
		UpdatedAt: now.Add(-2 * time.Minute),
	}

	p := status.Presence(now, DefaultPresenceStaleAfter)

	assert.False(t, p.Active)
	assert.Empty(t, p.Sessions)
	assert.NotNil(t, p.Sessions)
	assert.Equal(t, 0, p.SessionCount)
	require.NotNil(t, p.LastSeen)
}

func TestAgentStatus_Presence_FreshButInactive(t *testing.T) {
	now := time.Now()
	status := AgentStatus{Active: false, Sessions: []string{"s1"}, UpdatedAt: now}

	p := status.Presence(now, DefaultPresenceStaleAfter)

	assert.False(t, p.Active)
	assert.Equal(t, 1, p.SessionCount)
}
