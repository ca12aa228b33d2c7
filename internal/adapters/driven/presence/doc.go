// Package presence holds the key-value stores behind the agent status
// indicator. Subpackages back the store with Redis or an in-process cache.
package presence

import "time"

// KeyPrefix namespaces presence entries.
const KeyPrefix = "agent-status"

// DefaultEntryTTL bounds how long an entry outlives its last update.
// Liveness itself is decided at read time against a shorter cutoff.
const DefaultEntryTTL = 24 * time.Hour

// Key returns the storage key for an agent.
func Key(agentID string) string {
	return KeyPrefix + ":" + agentID
}
