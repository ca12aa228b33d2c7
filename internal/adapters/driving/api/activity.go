package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

type activityHandler struct {
	svc driving.ActivityService
}

func (h *activityHandler) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listActivities", Method: http.MethodGet, Path: "/api/activity",
		Summary: "List activity log entries, newest first", Tags: []string{"Activity"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "logActivity", Method: http.MethodPost, Path: "/api/activity",
		Summary: "Append an activity log entry", Tags: []string{"Activity"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

// ListActivitiesInput holds the activity filters.
type ListActivitiesInput struct {
	Category string `query:"category"`
	Action   string `query:"action"`
	Status   string `query:"status"`
	Since    string `query:"since" doc:"RFC 3339 timestamp or yyyy-MM-dd"`
	Limit    string `query:"limit" doc:"1 to 200, default 50"`
}

// ActivitiesOutput wraps an activity list.
type ActivitiesOutput struct {
	Body []ActivityBody
}

// ActivityOutput wraps one activity.
type ActivityOutput struct {
	Body ActivityBody
}

// CreateActivityInput is the log-activity request.
type CreateActivityInput struct {
	Body struct {
		Action      string         `json:"action" required:"false"`
		Category    string         `json:"category" required:"false"`
		Title       string         `json:"title" required:"false"`
		Description string         `json:"description,omitempty"`
		Metadata    map[string]any `json:"metadata,omitempty"`
		SessionID   string         `json:"sessionId,omitempty"`
		Status      string         `json:"status,omitempty"`
		Timestamp   string         `json:"timestamp,omitempty"`
	}
}

func (h *activityHandler) list(ctx context.Context, in *ListActivitiesInput) (*ActivitiesOutput, error) {
	filter := domain.ActivityFilter{
		Category: in.Category,
		Action:   in.Action,
		Status:   in.Status,
		Limit:    domain.ParseActivityLimit(in.Limit),
	}
	if strings.TrimSpace(in.Since) != "" {
		since, err := parseTimestamp(in.Since)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid since date")
		}
		filter.Since = &since
	}

	activities, err := h.svc.List(ctx, filter)
	if err != nil {
		return nil, toHumaError(err, "activities", "fetch")
	}
	return &ActivitiesOutput{
		Body: lo.Map(activities, func(a domain.Activity, _ int) ActivityBody { return NewActivityBody(a) }),
	}, nil
}

func (h *activityHandler) create(ctx context.Context, in *CreateActivityInput) (*ActivityOutput, error) {
	b := in.Body
	params := domain.NewActivityParams{
		Action:      b.Action,
		Category:    b.Category,
		Title:       b.Title,
		Description: b.Description,
		Metadata:    b.Metadata,
		SessionID:   b.SessionID,
		Status:      b.Status,
	}
	if strings.TrimSpace(b.Timestamp) != "" {
		ts, err := parseTimestamp(b.Timestamp)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid timestamp")
		}
		params.Timestamp = ts
	}

	activity, err := h.svc.Create(ctx, params)
	if err != nil {
		return nil, toHumaError(err, "activity", "create")
	}
	return &ActivityOutput{Body: NewActivityBody(*activity)}, nil
}
