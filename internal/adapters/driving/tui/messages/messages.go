// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// SearchCompleted carries a finished search back to the model.
type SearchCompleted struct {
	Query    string
	Response *domain.SearchResponse
	Err      error
}

// NotesChanged is sent when a watched note file is created, written or removed.
type NotesChanged struct {
	Path string
}

// WatchStopped is sent when the note watcher channel closes.
type WatchStopped struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred reports an error to display.
type ErrorOccurred struct {
	Err error
}

// Quit requests the program to exit.
type Quit struct{}
