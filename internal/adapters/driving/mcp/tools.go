package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"text to find in notes, projects, tasks and activities"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 20)"`
	Domains string `json:"domains,omitempty" jsonschema:"comma-separated subset of memory,projects,tasks,activities"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Counts  map[string]int       `json:"counts"`
}

// SearchResultOutput is one ranked hit.
type SearchResultOutput struct {
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	ID      string  `json:"id,omitempty"`
	Path    string  `json:"path,omitempty"`
	Line    int     `json:"line,omitempty"`
}

// LogActivityInput is the input schema for the log_activity tool.
type LogActivityInput struct {
	Action      string `json:"action" jsonschema:"what happened, e.g. deploy"`
	Category    string `json:"category" jsonschema:"area the action belongs to, e.g. ops"`
	Title       string `json:"title" jsonschema:"one-line summary"`
	Description string `json:"description,omitempty" jsonschema:"longer detail"`
	Status      string `json:"status,omitempty" jsonschema:"outcome (default success)"`
	SessionID   string `json:"sessionId,omitempty" jsonschema:"agent session that performed the action"`
}

// LogActivityOutput reports the stored entry.
type LogActivityOutput struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search memory notes, board projects, tasks and the activity log in one ranked list",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Append an entry to the Mission Control activity log",
	}, s.handleLogActivity)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{
		Limit:   limit,
		Domains: domain.ParseDomains(input.Domains),
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query: resp.Query,
		Results: lo.Map(resp.Results, func(r domain.Result, _ int) SearchResultOutput {
			out := SearchResultOutput{Type: string(r.Kind), Title: r.Title, Snippet: r.Snippet, Score: r.Score}
			switch ref := r.Ref.(type) {
			case domain.NoteRef:
				out.Path, out.Line = ref.Path, ref.Line
			case domain.RecordRef:
				out.ID = ref.ID
			case domain.ActivityRef:
				out.ID = ref.ID
			}
			return out
		}),
		Counts: lo.MapKeys(resp.Counts, func(_ int, d domain.SearchDomain) string { return d.String() }),
	}
	return nil, output, nil
}

func (s *Server) handleLogActivity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LogActivityInput,
) (*mcp.CallToolResult, LogActivityOutput, error) {
	activity, err := s.ports.Activity.Create(ctx, domain.NewActivityParams{
		Action:      input.Action,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		SessionID:   input.SessionID,
	})
	if err != nil {
		return nil, LogActivityOutput{}, err
	}

	return nil, LogActivityOutput{
		ID:        activity.ID,
		Status:    activity.Status,
		Timestamp: activity.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}
