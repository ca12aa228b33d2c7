package driving

import (
	"context"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs the selected domain adapters and returns the merged,
	// ranked and truncated results with pre-truncation counts.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
