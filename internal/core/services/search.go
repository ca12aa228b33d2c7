package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// domainOutcome is one adapter's contribution to a search.
type domainOutcome struct {
	results []domain.Result
	err     error
}

// SearchService fans a query out to the notes and store adapters and
// merges their ranked results.
type SearchService struct {
	notes             driven.NoteSource
	index             driven.SearchIndex
	strictStoreErrors bool
}

// NewSearchService creates a new search service.
// Store failures fail the whole search until SetStrictStoreErrors(false).
func NewSearchService(notes driven.NoteSource, index driven.SearchIndex) *SearchService {
	return &SearchService{
		notes:             notes,
		index:             index,
		strictStoreErrors: true,
	}
}

// SetStrictStoreErrors chooses whether any store-domain failure fails the
// search (true) or only a failure of the sole selected domain does (false).
func (s *SearchService) SetStrictStoreErrors(strict bool) {
	s.strictStoreErrors = strict
}

// Search runs the selected domains concurrently, concatenates their results
// in merge order, stable-sorts by score and truncates to the limit.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	resp := &domain.SearchResponse{
		Query:   query,
		Results: []domain.Result{},
		Counts:  domain.NewSearchCounts(),
	}
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return resp, nil
	}

	limit := max(1, opts.Limit)
	domains := opts.Domains
	if domains == nil {
		domains = domain.AllDomains()
	}
	logger.Debug("Limit: %d, Domains: %v", limit, domains)

	outcomes := make([]domainOutcome, len(domains))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range domains {
		g.Go(func() error {
			results, err := s.searchDomain(gctx, d, query, limit)
			if err != nil {
				if d.IsStoreBacked() && s.strictStoreErrors {
					return fmt.Errorf("%s: %w", d, err)
				}
				outcomes[i].err = err
				return nil
			}
			outcomes[i].results = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Search failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	for i, d := range domains {
		out := outcomes[i]
		if out.err != nil {
			logger.Warn("Search domain %s unavailable: %v", d, out.err)
			if d.IsStoreBacked() && len(domains) == 1 {
				return nil, fmt.Errorf("%w: %s: %w", domain.ErrSearchFailed, d, out.err)
			}
			continue
		}
		resp.Counts[d] = len(out.results)
		resp.Results = append(resp.Results, out.results...)
	}

	sort.SliceStable(resp.Results, func(i, j int) bool {
		return resp.Results[i].Score > resp.Results[j].Score
	})
	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}

	logger.Debug("Counts: %v, returned: %d", resp.Counts, len(resp.Results))
	return resp, nil
}

func (s *SearchService) searchDomain(
	ctx context.Context, d domain.SearchDomain, query string, limit int,
) ([]domain.Result, error) {
	switch d {
	case domain.DomainMemory:
		return s.searchNotes(ctx, query)
	case domain.DomainProjects:
		projects, err := s.index.SearchProjects(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		return lo.Map(projects, func(p domain.Project, _ int) domain.Result {
			return projectResult(p, query)
		}), nil
	case domain.DomainTasks:
		tasks, err := s.index.SearchTasks(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		return lo.Map(tasks, func(m domain.TaskMatch, _ int) domain.Result {
			return taskResult(m, query)
		}), nil
	case domain.DomainActivities:
		activities, err := s.index.SearchActivities(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		return lo.Map(activities, func(a domain.Activity, _ int) domain.Result {
			return activityResult(a, query)
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown search domain %q", domain.ErrInvalidInput, d)
	}
}

// searchNotes returns nothing when no note source is configured.
// Its errors are never fatal to the search.
func (s *SearchService) searchNotes(ctx context.Context, query string) ([]domain.Result, error) {
	if s.notes == nil {
		return nil, nil
	}
	matches, err := s.notes.Scan(ctx, query)
	if err != nil {
		return nil, err
	}
	return lo.Map(matches, func(m domain.NoteMatch, _ int) domain.Result {
		return noteResult(m, query)
	}), nil
}
