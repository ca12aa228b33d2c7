package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("maps results and counts", func(t *testing.T) {
		counts := domain.NewSearchCounts()
		counts[domain.DomainMemory] = 1
		counts[domain.DomainActivities] = 2
		search := &mockSearchService{resp: &domain.SearchResponse{
			Query: "rocket",
			Results: []domain.Result{
				{Kind: domain.KindMemory, Title: "MEMORY.md", Snippet: "rocket", Score: 0.9,
					Ref: domain.NoteRef{Path: "/n/MEMORY.md", Line: 3}},
				{Kind: domain.KindActivity, Title: "Shipped", Score: 0.7,
					Ref: domain.ActivityRef{ID: "a1", Timestamp: time.Now()}},
			},
			Counts: counts,
		}}
		server := newTestServer(t, &Ports{Search: search, Activity: &mockActivityService{}})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "rocket", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, "rocket", output.Query)
		require.Len(t, output.Results, 2)
		assert.Equal(t, "memory", output.Results[0].Type)
		assert.Equal(t, "/n/MEMORY.md", output.Results[0].Path)
		assert.Equal(t, 3, output.Results[0].Line)
		assert.Equal(t, "a1", output.Results[1].ID)
		assert.Equal(t, map[string]int{"memory": 1, "projects": 0, "tasks": 0, "activities": 2}, output.Counts)
		assert.Equal(t, 5, search.opts.Limit)
	})

	t.Run("default limit and domain filter", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(t, &Ports{Search: search, Activity: &mockActivityService{}})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "x", Domains: "tasks, notes"})

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.Equal(t, 20, search.opts.Limit)
		assert.Equal(t, []domain.SearchDomain{domain.DomainTasks}, search.opts.Domains)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		search := &mockSearchService{err: domain.ErrSearchFailed}
		server := newTestServer(t, &Ports{Search: search, Activity: &mockActivityService{}})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		assert.ErrorIs(t, err, domain.ErrSearchFailed)
	})
}

func TestServer_handleLogActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("creates entry", func(t *testing.T) {
		activity := &mockActivityService{}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: activity})

		_, output, err := server.handleLogActivity(ctx, nil, LogActivityInput{
			Action: "deploy", Category: "ops", Title: "Shipped", Description: "v1.2",
		})

		require.NoError(t, err)
		assert.Equal(t, "a-1", output.ID)
		assert.Equal(t, "success", output.Status)
		assert.Equal(t, "2024-01-02T03:04:05Z", output.Timestamp)
		require.NotNil(t, activity.created)
		assert.Equal(t, "v1.2", activity.created.Description)
	})

	t.Run("propagates validation error", func(t *testing.T) {
		activity := &mockActivityService{err: errors.Join(domain.ErrInvalidInput, errors.New("missing fields"))}
		server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: activity})

		_, _, err := server.handleLogActivity(ctx, nil, LogActivityInput{Action: "x"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
