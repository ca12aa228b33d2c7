// Package cron fetches scheduled jobs from an external scheduler's HTTP API.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CronSource = (*Source)(nil)

// maxBodyBytes caps the job list response.
const maxBodyBytes = 1 << 20

// Source lists jobs from a JSON endpoint.
type Source struct {
	url    string
	client *http.Client
}

// NewSource creates a cron source. A non-positive timeout uses
// domain.DefaultCronTimeout.
func NewSource(url string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = domain.DefaultCronTimeout
	}
	return &Source{url: url, client: &http.Client{Timeout: timeout}}
}

// ListJobs fetches the job list. The body may be an array of jobs or an
// object holding one under "jobs" or "cronJobs".
func (s *Source) ListJobs(ctx context.Context) ([]domain.CronJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", domain.ErrCronSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	logger.Debug("Fetching cron jobs from %s", s.url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCronSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: cron API responded %d", domain.ErrCronSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrCronSourceUnavailable, err)
	}

	raw, err := decodeJobList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCronSourceUnavailable, err)
	}

	jobs := make([]domain.CronJob, 0, len(raw))
	for i, r := range raw {
		jobs = append(jobs, r.toDomain(i))
	}
	return jobs, nil
}

func decodeJobList(body []byte) ([]rawJob, error) {
	var list []rawJob
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Jobs     []rawJob `json:"jobs"`
		CronJobs []rawJob `json:"cronJobs"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding job list: %w", err)
	}
	if wrapped.Jobs != nil {
		return wrapped.Jobs, nil
	}
	return wrapped.CronJobs, nil
}

// rawJob accepts the field aliases used by different schedulers.
type rawJob struct {
	ID          json.RawMessage `json:"id"`
	JobID       json.RawMessage `json:"jobId"`
	Name        *string         `json:"name"`
	Title       *string         `json:"title"`
	Schedule    *string         `json:"schedule"`
	Cron        *string         `json:"cron"`
	Expression  *string         `json:"expression"`
	Enabled     *bool           `json:"enabled"`
	Description *string         `json:"description"`
}

func (r rawJob) toDomain(index int) domain.CronJob {
	id, ok := scalarString(r.ID)
	if !ok {
		id, ok = scalarString(r.JobID)
	}
	if !ok {
		id = strconv.Itoa(index)
	}

	job := domain.CronJob{
		ID:       id,
		Name:     firstString(domain.DefaultCronJobName, r.Name, r.Title),
		Schedule: firstString("", r.Schedule, r.Cron, r.Expression),
		Enabled:  r.Enabled == nil || *r.Enabled,
	}
	if r.Description != nil {
		job.Description = *r.Description
	}
	return job
}

// scalarString renders a JSON string or number. Null and absent yield false.
func scalarString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

func firstString(fallback string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}
