package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

const (
	uriScheme = "mission-control://"

	recentActivityLimit = 25
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "activity",
		Name:        "recent-activity",
		Description: "The most recent activity log entries, newest first",
		MIMEType:    "application/json",
	}, s.handleActivityResource)

	if s.ports.Board != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "board",
			Name:        "board",
			Description: "Board columns with their projects and task progress",
			MIMEType:    "application/json",
		}, s.handleBoardResource)
	}

	if s.ports.Calendar != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "calendar/{weekOf}",
			Name:        "calendar-week",
			Description: "Scheduled jobs and due dates for the week containing weekOf (yyyy-MM-dd)",
			MIMEType:    "application/json",
		}, s.handleCalendarResource)
	}
}

type activityInfo struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleActivityResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	activities, err := s.ports.Activity.List(ctx, domain.ActivityFilter{Limit: recentActivityLimit})
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	infos := lo.Map(activities, func(a domain.Activity, _ int) activityInfo {
		return activityInfo{
			ID:        a.ID,
			Action:    a.Action,
			Category:  a.Category,
			Title:     a.Title,
			Status:    a.Status,
			Timestamp: a.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		}
	})
	return jsonResource(req.Params.URI, infos)
}

type projectInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	Assignee  string `json:"assignee,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	TasksDone int    `json:"tasksDone"`
	TaskCount int    `json:"taskCount"`
}

type columnInfo struct {
	Name     string        `json:"name"`
	Projects []projectInfo `json:"projects"`
}

func (s *Server) handleBoardResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// GetBoard creates the default board on first use.
	board, err := s.ports.Board.GetBoard(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}

	infos := lo.Map(board.Columns, func(c domain.Column, _ int) columnInfo {
		return columnInfo{
			Name: c.Name,
			Projects: lo.Map(c.Projects, func(p domain.Project, _ int) projectInfo {
				info := projectInfo{
					ID:        p.ID,
					Title:     p.Title,
					Priority:  p.Priority.String(),
					Assignee:  p.Assignee,
					TasksDone: len(lo.Filter(p.Tasks, func(t domain.Task, _ int) bool { return t.Completed })),
					TaskCount: len(p.Tasks),
				}
				if p.DueDate != nil {
					info.DueDate = p.DueDate.Format(domain.DateLayout)
				}
				return info
			}),
		}
	})
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleCalendarResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	weekOf, ok := extractWeekOf(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	week, err := s.ports.Calendar.Week(ctx, weekOf)
	if err != nil {
		return nil, fmt.Errorf("loading calendar: %w", err)
	}

	return jsonResource(req.Params.URI, calendarInfo{
		WeekOf: week.WeekOf,
		Events: lo.Map(week.Events, func(e domain.CalendarEvent, _ int) eventInfo {
			return eventInfo{
				Type:   string(e.Type),
				Title:  e.Title,
				Date:   e.Date,
				Time:   e.Time,
				Status: string(e.Status),
			}
		}),
	})
}

type eventInfo struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Time   string `json:"time,omitempty"`
	Status string `json:"status,omitempty"`
}

type calendarInfo struct {
	WeekOf string      `json:"weekOf"`
	Events []eventInfo `json:"events"`
}

// extractWeekOf reads the date from mission-control://calendar/{weekOf}.
// The literal "current" selects this week and yields "".
func extractWeekOf(uri string) (string, bool) {
	const prefix = uriScheme + "calendar/"

	weekOf, ok := strings.CutPrefix(uri, prefix)
	if !ok || weekOf == "" {
		return "", false
	}
	if weekOf == "current" {
		return "", true
	}
	return weekOf, true
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
