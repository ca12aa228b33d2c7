package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

type searchHandler struct {
	svc          driving.SearchService
	defaultLimit int
}

// SearchInput holds the search query parameters. Limit and domains are
// lenient strings: bad values are defaulted, never rejected.
type SearchInput struct {
	Q       string `query:"q" doc:"Search text; blank returns no results"`
	Limit   string `query:"limit" doc:"Maximum results, clamped to at least 1"`
	Domains string `query:"domains" doc:"Comma-separated subset of memory,projects,tasks,activities"`
}

// SearchOutput wraps the search response.
type SearchOutput struct {
	Body SearchBody
}

func (h *searchHandler) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Federated search",
		Description: "Searches notes, projects, tasks and activities and returns one ranked list",
		Tags:        []string{"Search"},
	}, h.search)
}

func (h *searchHandler) search(ctx context.Context, in *SearchInput) (*SearchOutput, error) {
	opts := domain.SearchOptions{
		Limit:   domain.ParseSearchLimit(in.Limit, h.defaultLimit),
		Domains: domain.ParseDomains(in.Domains),
	}

	resp, err := h.svc.Search(ctx, in.Q, opts)
	if err != nil {
		logger.Error("Search failed: %v", err)
		return nil, huma.Error500InternalServerError("Search failed")
	}
	return &SearchOutput{Body: NewSearchBody(resp)}, nil
}
