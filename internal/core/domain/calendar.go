package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Calendar constants.
const (
	// DateLayout is the yyyy-MM-dd wire format for calendar dates.
	DateLayout = "2006-01-02"

	// TimeLayout is the HH:mm wire format for event times.
	TimeLayout = "15:04"

	CronEventColor    = "#fd4987"
	DueDateEventColor = "#6130ba"

	// DefaultCronJobName names jobs the cron source left untitled.
	DefaultCronJobName = "Scheduled job"
)

// EventType distinguishes calendar event sources.
type EventType string

// Available event types.
const (
	EventTypeCron    EventType = "cron"
	EventTypeDueDate EventType = "due_date"
)

// EventStatus reports whether an event will fire.
type EventStatus string

// Available event statuses.
const (
	EventStatusActive   EventStatus = "active"
	EventStatusDisabled EventStatus = "disabled"
)

// Recurrence labels for cron events.
const (
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

// CronJob is a scheduled job reported by the cron source.
type CronJob struct {
	ID          string
	Name        string
	Schedule    string
	Enabled     bool
	Description string
}

// FallbackCronJobs returns the jobs shown when the cron source cannot be reached.
func FallbackCronJobs() []CronJob {
	return []CronJob{
		{ID: "mock-1", Name: "Sync Kierra TikTok Videos", Schedule: "0 4 * * *", Enabled: true},
		{ID: "mock-2", Name: "Publish Fast Track Daily Brief", Schedule: "30 9 * * 1,3,5", Enabled: true},
		{ID: "mock-3", Name: "Weekly Metrics Digest", Schedule: "0 14 * * 5", Enabled: false},
	}
}

// CalendarEvent is one entry on the weekly calendar.
type CalendarEvent struct {
	ID         string
	Type       EventType
	Title      string
	Date       string
	Time       string
	Recurrence string
	Priority   Priority
	Status     EventStatus
	Color      string
}

// CalendarWeek is the calendar for one Sunday-to-Saturday week.
type CalendarWeek struct {
	WeekOf string
	Events []CalendarEvent
}

// CronSchedule is the subset of a cron expression the calendar understands.
type CronSchedule struct {
	Minute     int
	Hour       int
	Days       []time.Weekday
	Recurrence string
}

// Runs reports whether the schedule fires on the given weekday.
func (s CronSchedule) Runs(day time.Weekday) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

// TimeLabel returns the HH:mm firing time.
func (s CronSchedule) TimeLabel() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

func everyDay() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// ParseCronSchedule reads minute, hour and day-of-week from a 5 or 6 field
// cron expression. Six fields drop the leading seconds field. Day-of-month
// and month are ignored. It returns false for expressions it cannot place.
func ParseCronSchedule(schedule string) (CronSchedule, bool) {
	parts := strings.Fields(schedule)
	if len(parts) == 6 {
		parts = parts[1:]
	}
	if len(parts) < 5 {
		return CronSchedule{}, false
	}

	minute, ok := parseCronField(parts[0])
	if !ok {
		return CronSchedule{}, false
	}
	hour, ok := parseCronField(parts[1])
	if !ok {
		return CronSchedule{}, false
	}

	dow := parts[4]
	var days []time.Weekday
	switch {
	case dow == "*":
		days = everyDay()
	case strings.ContainsAny(dow, ",0123456789"):
		for _, raw := range strings.Split(dow, ",") {
			n, ok := ParseLeadingInt(raw)
			if !ok {
				continue
			}
			if n == 7 {
				n = 0
			}
			if n >= 0 && n <= 6 {
				days = append(days, time.Weekday(n))
			}
		}
	default:
		days = everyDay()
	}
	if len(days) == 0 {
		days = everyDay()
	}

	recurrence := RecurrenceWeekly
	if dow == "*" {
		recurrence = RecurrenceDaily
	}

	return CronSchedule{Minute: minute, Hour: hour, Days: days, Recurrence: recurrence}, true
}

func parseCronField(raw string) (int, bool) {
	if raw == "*" {
		return 0, true
	}
	return ParseLeadingInt(raw)
}

// ParseLeadingInt parses the optional sign and leading digits of s,
// ignoring leading whitespace and anything after the digits.
// "12abc" yields 12; "abc" and "" yield false.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return sign * n, true
}

// StartOfWeek returns midnight of the Sunday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// ParseDateOnly parses a yyyy-MM-dd date at midnight in loc.
func ParseDateOnly(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidInput, raw)
	}
	return t, nil
}

// ExpandCronEvents places each job on every day of the week starting at
// weekStart on which its schedule fires. Jobs with unparseable schedules
// are skipped.
func ExpandCronEvents(jobs []CronJob, weekStart time.Time) []CalendarEvent {
	var events []CalendarEvent
	for _, job := range jobs {
		sched, ok := ParseCronSchedule(job.Schedule)
		if !ok {
			continue
		}

		status := EventStatusActive
		if !job.Enabled {
			status = EventStatusDisabled
		}

		for offset := 0; offset < 7; offset++ {
			day := weekStart.AddDate(0, 0, offset)
			if !sched.Runs(day.Weekday()) {
				continue
			}
			date := day.Format(DateLayout)
			events = append(events, CalendarEvent{
				ID:         fmt.Sprintf("cron-%s-%s", job.ID, date),
				Type:       EventTypeCron,
				Title:      job.Name,
				Date:       date,
				Time:       sched.TimeLabel(),
				Recurrence: sched.Recurrence,
				Status:     status,
				Color:      CronEventColor,
			})
		}
	}
	return events
}

// DueDateEvent builds the calendar entry for a project's due date.
// The date and time are rendered in loc.
func DueDateEvent(p Project, loc *time.Location) (CalendarEvent, bool) {
	if p.DueDate == nil {
		return CalendarEvent{}, false
	}
	due := p.DueDate.In(loc)
	return CalendarEvent{
		ID:       "proj-" + p.ID,
		Type:     EventTypeDueDate,
		Title:    p.Title,
		Date:     due.Format(DateLayout),
		Time:     due.Format(TimeLayout),
		Priority: p.Priority,
		Status:   EventStatusActive,
		Color:    DueDateEventColor,
	}, true
}

// SortEvents orders events by date then time, keeping insertion order on ties.
func SortEvents(events []CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
}
