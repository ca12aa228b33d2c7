// Package tui provides an interactive terminal search for Mission Control.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"
	"errors"

	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

// ErrMissingSearchService is returned by NewApp without a search service.
var ErrMissingSearchService = errors.New("tui: search service is required")

// NoteWatcher reports changed note files until its context ends.
type NoteWatcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Ports aggregates the services the TUI drives.
type Ports struct {
	// Search runs federated queries. Required.
	Search driving.SearchService

	// Watcher re-runs the current query when notes change. Optional.
	Watcher NoteWatcher

	// Limit caps results per query. Zero uses the default search limit.
	Limit int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
