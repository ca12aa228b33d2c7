package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractWeekOf(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		want   string
		wantOK bool
	}{
		{name: "date", uri: "mission-control://calendar/2024-01-10", want: "2024-01-10", wantOK: true},
		{name: "current week", uri: "mission-control://calendar/current", want: "", wantOK: true},
		{name: "missing date", uri: "mission-control://calendar/"},
		{name: "wrong scheme", uri: "file://calendar/2024-01-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractWeekOf(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServer_handleActivityResource(t *testing.T) {
	activity := &mockActivityService{activities: []domain.Activity{{
		ID: "a1", Action: "deploy", Category: "ops", Title: "Shipped", Status: "success",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: activity})

	result, err := server.handleActivityResource(context.Background(), readRequest("mission-control://activity"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Equal(t, recentActivityLimit, activity.filter.Limit)

	var infos []activityInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "2024-01-02T03:04:05Z", infos[0].Timestamp)
}

func TestServer_handleActivityResource_Error(t *testing.T) {
	activity := &mockActivityService{err: errors.New("database is locked")}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: activity})

	_, err := server.handleActivityResource(context.Background(), readRequest("mission-control://activity"))

	assert.ErrorContains(t, err, "listing activities")
}

func TestServer_handleBoardResource(t *testing.T) {
	due := time.Date(2024, 1, 9, 17, 30, 0, 0, time.UTC)
	board := &mockBoardService{board: &domain.Board{Columns: []domain.Column{
		{Name: "To Do", Projects: []domain.Project{{
			ID: "p1", Title: "Launch", Priority: domain.PriorityHigh, DueDate: &due,
			Tasks: []domain.Task{{Completed: true}, {}, {Completed: true}},
		}}},
		{Name: "Done"},
	}}}
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: &mockActivityService{}, Board: board})

	result, err := server.handleBoardResource(context.Background(), readRequest("mission-control://board"))

	require.NoError(t, err)
	var columns []columnInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &columns))
	require.Len(t, columns, 2)
	require.Len(t, columns[0].Projects, 1)
	p := columns[0].Projects[0]
	assert.Equal(t, "high", p.Priority)
	assert.Equal(t, "2024-01-09", p.DueDate)
	assert.Equal(t, 2, p.TasksDone)
	assert.Equal(t, 3, p.TaskCount)
	assert.Empty(t, columns[1].Projects)
}

func TestServer_handleCalendarResource(t *testing.T) {
	calendar := &mockCalendarService{}
	server := newTestServer(t, &Ports{
		Search: &mockSearchService{}, Activity: &mockActivityService{}, Calendar: calendar,
	})

	result, err := server.handleCalendarResource(context.Background(), readRequest("mission-control://calendar/current"))

	require.NoError(t, err)
	assert.Equal(t, "", calendar.weekOf)
	var week calendarInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &week))
	assert.Equal(t, "2024-01-07", week.WeekOf)
	require.Len(t, week.Events, 1)
	assert.Equal(t, "cron", week.Events[0].Type)

	_, err = server.handleCalendarResource(context.Background(), readRequest("mission-control://calendar/"))
	assert.Error(t, err)

	calendar.err = domain.ErrInvalidInput
	_, err = server.handleCalendarResource(context.Background(), readRequest("mission-control://calendar/bad"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
