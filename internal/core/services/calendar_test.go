package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mission-control/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// mockCronSource implements driven.CronSource for testing.
type mockCronSource struct {
	jobs []domain.CronJob
	err  error
}

func (m *mockCronSource) ListJobs(context.Context) ([]domain.CronJob, error) {
	return m.jobs, m.err
}

func newCalendarFixture(t *testing.T, cron *mockCronSource) (*CalendarService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewCalendarService(store, cron, time.UTC)
	// Wednesday 2024-01-10.
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestCalendarService_Week_CurrentWeek(t *testing.T) {
	svc, _ := newCalendarFixture(t, &mockCronSource{})

	week, err := svc.Week(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-07", week.WeekOf)
	assert.NotNil(t, week.Events)
	assert.Empty(t, week.Events)
}

func TestCalendarService_Week_CronAndDueDates(t *testing.T) {
	cron := &mockCronSource{jobs: []domain.CronJob{
		{ID: "daily", Name: "Backup", Schedule: "0 4 * * *", Enabled: true},
		{ID: "fri", Name: "Digest", Schedule: "30 9 * * 5", Enabled: false},
		{ID: "bad", Name: "Broken", Schedule: "@hourly", Enabled: true},
	}}
	svc, store := newCalendarFixture(t, cron)
	ctx := context.Background()

	due := time.Date(2024, 1, 9, 17, 30, 0, 0, time.UTC)
	outside := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveProject(ctx, &domain.Project{
		ID: "p1", Title: "Ship", Priority: domain.PriorityHigh, DueDate: &due,
	}))
	require.NoError(t, store.SaveProject(ctx, &domain.Project{ID: "p2", Title: "Later", DueDate: &outside}))

	week, err := svc.Week(ctx, "2024-01-11")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-07", week.WeekOf)
	// 7 daily + 1 weekly + 1 due date.
	require.Len(t, week.Events, 9)

	var dueEvents, fridays []domain.CalendarEvent
	for _, e := range week.Events {
		switch {
		case e.Type == domain.EventTypeDueDate:
			dueEvents = append(dueEvents, e)
		case e.Title == "Digest":
			fridays = append(fridays, e)
		}
	}

	require.Len(t, dueEvents, 1)
	assert.Equal(t, "proj-p1", dueEvents[0].ID)
	assert.Equal(t, "2024-01-09", dueEvents[0].Date)
	assert.Equal(t, "17:30", dueEvents[0].Time)
	assert.Equal(t, domain.PriorityHigh, dueEvents[0].Priority)

	require.Len(t, fridays, 1)
	assert.Equal(t, "cron-fri-2024-01-12", fridays[0].ID)
	assert.Equal(t, domain.EventStatusDisabled, fridays[0].Status)
	assert.Equal(t, domain.RecurrenceWeekly, fridays[0].Recurrence)

	for i := 1; i < len(week.Events); i++ {
		prev, cur := week.Events[i-1], week.Events[i]
		assert.LessOrEqual(t, prev.Date+prev.Time, cur.Date+cur.Time)
	}
}

func TestCalendarService_Week_CronFailureFallsBack(t *testing.T) {
	svc, _ := newCalendarFixture(t, &mockCronSource{err: errors.New("connection refused")})

	week, err := svc.Week(context.Background(), "2024-01-07")
	require.NoError(t, err)

	want := domain.ExpandCronEvents(domain.FallbackCronJobs(), time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Len(t, week.Events, len(want))
	assert.NotEmpty(t, week.Events)
}

func TestCalendarService_Week_NilCronSource(t *testing.T) {
	store := memory.NewStore()
	svc := NewCalendarService(store, nil, time.UTC)

	week, err := svc.Week(context.Background(), "2024-01-07")
	require.NoError(t, err)
	assert.NotEmpty(t, week.Events)
}

func TestCalendarService_Week_InvalidDate(t *testing.T) {
	svc, _ := newCalendarFixture(t, &mockCronSource{})

	_, err := svc.Week(context.Background(), "next tuesday")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "invalid weekOf date")
}
