package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
)

type calendarHandler struct {
	svc driving.CalendarService
}

// CalendarInput selects the week.
type CalendarInput struct {
	WeekOf string `query:"weekOf" doc:"Any yyyy-MM-dd date in the week; blank means this week"`
}

// CalendarOutput wraps one calendar week.
type CalendarOutput struct {
	Body CalendarBody
}

func (h *calendarHandler) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getCalendar", Method: http.MethodGet, Path: "/api/calendar",
		Summary: "Scheduled jobs and due dates for one week", Tags: []string{"Calendar"},
	}, h.week)
}

func (h *calendarHandler) week(ctx context.Context, in *CalendarInput) (*CalendarOutput, error) {
	week, err := h.svc.Week(ctx, in.WeekOf)
	if err != nil {
		return nil, toHumaError(err, "calendar events", "fetch")
	}
	return &CalendarOutput{Body: NewCalendarBody(week)}, nil
}
