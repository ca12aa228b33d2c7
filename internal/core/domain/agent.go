package domain

import "time"

// Presence defaults.
const (
	DefaultAgentID = "default"

	// DefaultPresenceStaleAfter is how long a presence entry counts as live.
	DefaultPresenceStaleAfter = 2 * time.Minute
)

// AgentStatus is the presence entry written by the agent.
type AgentStatus struct {
	Active    bool      `json:"active"`
	Sessions  []string  `json:"sessions"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgentPresence is the read-side view of agent status after the staleness check.
type AgentPresence struct {
	Active       bool
	Sessions     []string
	SessionCount int

	// LastSeen is nil when no entry exists.
	LastSeen  *time.Time
	CheckedAt time.Time

	// Error is set when the presence store could not be read.
	Error string
}

// Presence evaluates a stored status at now. Sessions are only reported
// while the entry is younger than staleAfter.
func (s AgentStatus) Presence(now time.Time, staleAfter time.Duration) AgentPresence {
	lastSeen := s.UpdatedAt
	p := AgentPresence{
		Sessions:  []string{},
		LastSeen:  &lastSeen,
		CheckedAt: now,
	}
	if now.Sub(s.UpdatedAt) >= staleAfter {
		return p
	}
	p.Active = s.Active
	if len(s.Sessions) > 0 {
		p.Sessions = append([]string(nil), s.Sessions...)
	}
	p.SessionCount = len(p.Sessions)
	return p
}
