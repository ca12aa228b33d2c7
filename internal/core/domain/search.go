package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SearchDomain identifies one of the searchable content sources.
type SearchDomain string

// Available search domains, in merge order.
const (
	// DomainMemory is the filesystem-backed notes domain.
	DomainMemory SearchDomain = "memory"

	// DomainProjects searches project titles and descriptions.
	DomainProjects SearchDomain = "projects"

	// DomainTasks searches task titles and their parent project titles.
	DomainTasks SearchDomain = "tasks"

	// DomainActivities searches the activity log.
	DomainActivities SearchDomain = "activities"
)

// AllDomains returns every search domain in merge order.
func AllDomains() []SearchDomain {
	return []SearchDomain{DomainMemory, DomainProjects, DomainTasks, DomainActivities}
}

// IsValid returns true if the domain is recognised.
func (d SearchDomain) IsValid() bool {
	switch d {
	case DomainMemory, DomainProjects, DomainTasks, DomainActivities:
		return true
	default:
		return false
	}
}

// IsStoreBacked returns true for domains served by the relational store.
func (d SearchDomain) IsStoreBacked() bool {
	return d == DomainProjects || d == DomainTasks || d == DomainActivities
}

// String returns the string representation.
func (d SearchDomain) String() string {
	return string(d)
}

// ParseDomains parses a comma-separated domain list.
// Blank input selects every domain. Unknown names are dropped, duplicates
// collapse, and the result is returned in merge order. A non-blank list
// with no known names selects nothing.
func ParseDomains(raw string) []SearchDomain {
	if strings.TrimSpace(raw) == "" {
		return AllDomains()
	}

	selected := make(map[SearchDomain]bool)
	for _, part := range strings.Split(raw, ",") {
		d := SearchDomain(strings.ToLower(strings.TrimSpace(part)))
		if d.IsValid() {
			selected[d] = true
		}
	}

	domains := make([]SearchDomain, 0, len(selected))
	for _, d := range AllDomains() {
		if selected[d] {
			domains = append(domains, d)
		}
	}
	return domains
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of merged results. Values below 1 become 1.
	Limit int

	// Domains restricts which adapters run. Nil selects every domain.
	Domains []SearchDomain
}

// ParseSearchLimit converts a raw limit parameter. Blank or non-numeric
// input yields def; fractions are truncated and the result is at least 1.
func ParseSearchLimit(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return max(1, def)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return max(1, def)
	}
	if f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ResultKind tags a search result with the domain that produced it.
type ResultKind string

// Result kinds as they appear on the wire.
const (
	KindMemory   ResultKind = "memory"
	KindProject  ResultKind = "project"
	KindTask     ResultKind = "task"
	KindActivity ResultKind = "activity"
)

// SourceRef locates the record behind a search result.
// The concrete type depends on the result kind.
type SourceRef interface {
	sourceRef()
}

// NoteRef points at a line within a note file.
type NoteRef struct {
	Path string
	// Line is 1-based.
	Line int
}

// RecordRef points at a project or task row.
type RecordRef struct {
	ID string
}

// ActivityRef points at an activity log entry.
type ActivityRef struct {
	ID        string
	Timestamp time.Time
}

func (NoteRef) sourceRef()     {}
func (RecordRef) sourceRef()   {}
func (ActivityRef) sourceRef() {}

// Result represents a single search hit.
type Result struct {
	Kind    ResultKind
	Title   string
	Snippet string

	// Score is the relevance score in [0, 1].
	Score float64

	Ref SourceRef
}

// SearchCounts holds per-domain result counts taken before truncation.
type SearchCounts map[SearchDomain]int

// NewSearchCounts returns counts with every domain present and zero.
func NewSearchCounts() SearchCounts {
	counts := make(SearchCounts, 4)
	for _, d := range AllDomains() {
		counts[d] = 0
	}
	return counts
}

// Total returns the sum of every domain count.
func (c SearchCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// SearchResponse is the outcome of one aggregated search.
type SearchResponse struct {
	Query   string
	Results []Result
	Counts  SearchCounts
}

// NoteMatch is a raw match from a note file before scoring.
type NoteMatch struct {
	Path     string
	FileName string

	// MatchCount is the number of lines containing the query.
	MatchCount int

	FirstLine   string
	FirstLineNo int
}

// TaskMatch is a task row joined with its parent project title.
type TaskMatch struct {
	Task         Task
	ProjectTitle string
}
