package driven

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// NoteSource scans memory note files for a query.
// Implementations enumerate the root note file and the notes directory,
// skip oversized files, and report one match per file with at least one
// matching line.
type NoteSource interface {
	// Scan returns per-file matches for a case-insensitive substring query.
	// Unreadable individual files are skipped. An error means the notes
	// could not be enumerated at all.
	Scan(ctx context.Context, query string) ([]domain.NoteMatch, error)
}

// SearchIndex finds store-backed records containing a query.
// Every method is a case-insensitive substring match returning at most limit rows.
type SearchIndex interface {
	// SearchProjects matches project title or description.
	SearchProjects(ctx context.Context, query string, limit int) ([]domain.Project, error)

	// SearchTasks matches task title or parent project title.
	SearchTasks(ctx context.Context, query string, limit int) ([]domain.TaskMatch, error)

	// SearchActivities matches title, description, action or category, newest first.
	SearchActivities(ctx context.Context, query string, limit int) ([]domain.Activity, error)
}

// NoteWatcher reports changes to note files.
type NoteWatcher interface {
	// Watch emits the path of each created, modified or removed note file
	// until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan string, error)
}
