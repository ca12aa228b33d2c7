package mcp

import (
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs federated search. Required.
	Search driving.SearchService

	// Activity reads and appends the activity log. Required.
	Activity driving.ActivityService

	// Board backs the board resource. Optional.
	Board driving.BoardService

	// Calendar backs the calendar resource. Optional.
	Calendar driving.CalendarService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Activity == nil {
		return ErrMissingActivityService
	}
	return nil
}
