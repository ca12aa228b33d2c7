// Package domain defines the core business entities for Mission Control.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Result: A ranked search hit from one of the four search domains
//   - Board, Column, Project, Task: The kanban board hierarchy
//   - Activity: An entry in the append-only activity log
//   - CalendarEvent: A weekly calendar entry from a cron job or due date
//   - AgentStatus: The agent presence entry
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
