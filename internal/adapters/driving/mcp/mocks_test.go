package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	resp  *domain.SearchResponse
	err   error
	query string
	opts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.query, m.opts = query, opts
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.SearchResponse{Query: query, Results: []domain.Result{}, Counts: domain.NewSearchCounts()}, nil
	}
	return m.resp, nil
}

// mockActivityService is a mock implementation of driving.ActivityService.
type mockActivityService struct {
	activities []domain.Activity
	created    *domain.NewActivityParams
	filter     domain.ActivityFilter
	err        error
}

func (m *mockActivityService) List(_ context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	m.filter = filter
	return m.activities, m.err
}

func (m *mockActivityService) Create(_ context.Context, params domain.NewActivityParams) (*domain.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &params
	status := params.Status
	if status == "" {
		status = domain.DefaultActivityStatus
	}
	return &domain.Activity{
		ID:        "a-1",
		Action:    params.Action,
		Category:  params.Category,
		Title:     params.Title,
		Status:    status,
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

// mockBoardService is a mock implementation of driving.BoardService.
type mockBoardService struct {
	board *domain.Board
	err   error
}

func (m *mockBoardService) GetBoard(_ context.Context) (*domain.Board, error) {
	return m.board, m.err
}

func (m *mockBoardService) ListColumns(_ context.Context) ([]domain.Column, error) {
	if m.board == nil {
		return nil, m.err
	}
	return m.board.Columns, m.err
}

// mockCalendarService is a mock implementation of driving.CalendarService.
type mockCalendarService struct {
	weekOf string
	err    error
}

func (m *mockCalendarService) Week(_ context.Context, weekOf string) (*domain.CalendarWeek, error) {
	m.weekOf = weekOf
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CalendarWeek{
		WeekOf: "2024-01-07",
		Events: []domain.CalendarEvent{{
			ID: "cron-1", Type: domain.EventTypeCron, Title: "Backup",
			Date: "2024-01-08", Time: "04:00", Status: domain.EventStatusActive,
		}},
	}, nil
}

func newTestServer(t interface {
	Helper()
	Fatalf(string, ...any)
}, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports, 20)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}
