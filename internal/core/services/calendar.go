package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/core/ports/driving"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure CalendarService implements the interface.
var _ driving.CalendarService = (*CalendarService)(nil)

// CalendarService merges cron schedules and project due dates into a week view.
type CalendarService struct {
	projects driven.ProjectStore
	cron     driven.CronSource
	loc      *time.Location
	now      func() time.Time
}

// NewCalendarService creates a new calendar service.
// Weeks are computed in loc; nil means time.Local.
func NewCalendarService(projects driven.ProjectStore, cron driven.CronSource, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{projects: projects, cron: cron, loc: loc, now: time.Now}
}

// Week returns the events for the Sunday-start week containing weekOf.
func (s *CalendarService) Week(ctx context.Context, weekOf string) (*domain.CalendarWeek, error) {
	weekStart := domain.StartOfWeek(s.now().In(s.loc))
	if strings.TrimSpace(weekOf) != "" {
		day, err := domain.ParseDateOnly(weekOf, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid weekOf date", domain.ErrInvalidInput)
		}
		weekStart = domain.StartOfWeek(day)
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	var (
		due  []domain.Project
		jobs []domain.CronJob
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		due, err = s.projects.ProjectsDueBetween(gctx, weekStart, weekEnd)
		if err != nil {
			return fmt.Errorf("projects due: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		jobs = s.cronJobs(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	events := domain.ExpandCronEvents(jobs, weekStart)
	for _, p := range due {
		if e, ok := domain.DueDateEvent(p, s.loc); ok {
			events = append(events, e)
		}
	}
	domain.SortEvents(events)
	if events == nil {
		events = []domain.CalendarEvent{}
	}

	return &domain.CalendarWeek{
		WeekOf: weekStart.Format(domain.DateLayout),
		Events: events,
	}, nil
}

// cronJobs never fails; an unreachable source yields the fallback jobs.
func (s *CalendarService) cronJobs(ctx context.Context) []domain.CronJob {
	if s.cron == nil {
		return domain.FallbackCronJobs()
	}
	jobs, err := s.cron.ListJobs(ctx)
	if err != nil {
		logger.Warn("Falling back to default cron jobs: %v", err)
		return domain.FallbackCronJobs()
	}
	return jobs
}
