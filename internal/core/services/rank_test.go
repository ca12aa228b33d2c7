package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

func TestMatchIndex(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		idx      int
		ok       bool
	}{
		{"exact", "brown", "brown", 0, true},
		{"case insensitive", "The Quick BROWN fox", "brown", 10, true},
		{"first occurrence", "abab", "b", 1, true},
		{"absent", "hello", "world", 0, false},
		{"empty haystack", "", "x", 0, false},
		{"needle longer", "ab", "abc", 0, false},
		{"rune offsets", "héllo wörld", "WÖR", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := matchIndex(tt.haystack, tt.needle)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.idx, idx)
		})
	}
}

func TestBuildSnippet_NoMatchReturnsHead(t *testing.T) {
	text := strings.Repeat("a", 200)

	got := buildSnippet(text, "zzz", 160)

	assert.Equal(t, text[:160], got)
	assert.NotContains(t, got, "...")
}

func TestBuildSnippet_NoMatchShortText(t *testing.T) {
	assert.Equal(t, "short", buildSnippet("short", "zzz", 160))
}

func TestBuildSnippet_CentresOnMatch(t *testing.T) {
	got := buildSnippet("the quick brown fox jumps", "brown", 10)

	assert.Contains(t, got, "brown")
	assert.LessOrEqual(t, len(got), 10+6)
	assert.Equal(t, "...ck brown f...", got)
}

func TestBuildSnippet_MatchAtStart(t *testing.T) {
	got := buildSnippet("brown fox jumps over", "brown", 10)

	assert.Equal(t, "brown fox...", got)
}

func TestBuildSnippet_MatchAtEnd(t *testing.T) {
	got := buildSnippet("the quick brown", "brown", 10)

	// start = 10 - 3 = 7, end = 15 = len, so no suffix.
	assert.Equal(t, "...ck brown", got)
}

func TestBuildSnippet_CountsRunes(t *testing.T) {
	text := strings.Repeat("é", 100) + "target" + strings.Repeat("ü", 100)

	got := buildSnippet(text, "target", 30)

	assert.Contains(t, got, "target")
	assert.LessOrEqual(t, len([]rune(got)), 36)
}

func TestBestSnippet(t *testing.T) {
	assert.Equal(t, "about rockets", bestSnippet([]string{"", "about rockets", "rocket title"}, "rocket"))
	assert.Equal(t, "first", bestSnippet([]string{"", "first", "second"}, "zzz"))
	assert.Equal(t, "", bestSnippet([]string{"", ""}, "zzz"))

	long := strings.Repeat("x", 300)
	assert.Len(t, bestSnippet([]string{long}, "zzz"), 160)
}

func TestScoreMatch(t *testing.T) {
	assert.Equal(t, 0.0, scoreMatch("", "q"))
	assert.Equal(t, 0.0, scoreMatch("nothing here", "q"))
	assert.InDelta(t, 0.5, scoreMatch("launch", "launch"), 1e-9)
	// idx 5 of len 10 -> 0.3 + 0.2*0.5
	assert.InDelta(t, 0.4, scoreMatch("abcdeLAUNC", "launc"), 1e-9)
}

func TestScoreNote(t *testing.T) {
	m := domain.NoteMatch{FileName: "notes.md", MatchCount: 3}
	assert.InDelta(t, 0.70, scoreNote(m, "deploy"), 1e-9)

	m.FileName = "deploy-log.md"
	assert.InDelta(t, 0.85, scoreNote(m, "deploy"), 1e-9)

	m.MatchCount = 50
	assert.Equal(t, 1.0, scoreNote(m, "deploy"))
}

func TestNoteResult(t *testing.T) {
	m := domain.NoteMatch{
		Path:        "/root/memory/2024-01-01.md",
		FileName:    "2024-01-01.md",
		MatchCount:  1,
		FirstLine:   "Shipped the deploy pipeline",
		FirstLineNo: 4,
	}

	r := noteResult(m, "deploy")

	assert.Equal(t, domain.KindMemory, r.Kind)
	assert.Equal(t, "2024-01-01.md", r.Title)
	assert.Equal(t, "Shipped the deploy pipeline", r.Snippet)
	assert.Equal(t, domain.NoteRef{Path: m.Path, Line: 4}, r.Ref)
}

func TestProjectResult(t *testing.T) {
	p := domain.Project{ID: "p1", Title: "launch"}
	r := projectResult(p, "launch")

	assert.InDelta(t, 1.0, r.Score, 1e-9)
	assert.Equal(t, domain.KindProject, r.Kind)
	assert.Equal(t, "launch", r.Snippet)
	assert.Equal(t, domain.RecordRef{ID: "p1"}, r.Ref)
}

func TestProjectResult_DescriptionSnippetAndDueDate(t *testing.T) {
	due := time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC)
	p := domain.Project{
		ID:          "p2",
		Title:       "Website",
		Description: "Redesign the landing page",
		DueDate:     &due,
	}

	r := projectResult(p, "landing")

	assert.Equal(t, "Redesign the landing page Due 2024-03-09", r.Snippet)
	assert.InDelta(t, 0.5+0.3+0.2*(1-13.0/25.0), r.Score, 1e-9)
}

func TestTaskResult(t *testing.T) {
	m := domain.TaskMatch{
		Task:         domain.Task{ID: "t1", Title: "Book venue"},
		ProjectTitle: "Conference",
	}

	r := taskResult(m, "venue")

	assert.Equal(t, domain.KindTask, r.Kind)
	assert.Equal(t, "Book venue\nProject: Conference", r.Snippet)
	assert.InDelta(t, 0.45+0.3+0.2*(1-5.0/10.0), r.Score, 1e-9)
	assert.Equal(t, domain.RecordRef{ID: "t1"}, r.Ref)
}

func TestTaskResult_MatchesBothFields(t *testing.T) {
	m := domain.TaskMatch{
		Task:         domain.Task{ID: "t2", Title: "launch prep"},
		ProjectTitle: "launch",
	}

	r := taskResult(m, "launch")

	assert.InDelta(t, 1.0, r.Score, 1e-9)
}

func TestActivityResult(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := domain.Activity{
		ID:        "a1",
		Action:    "deploy",
		Category:  "release",
		Title:     "Deployed v2",
		Timestamp: ts,
	}

	r := activityResult(a, "deploy")

	assert.Equal(t, domain.KindActivity, r.Kind)
	assert.Equal(t, "deploy", r.Snippet)
	assert.LessOrEqual(t, r.Score, 1.0)
	assert.GreaterOrEqual(t, r.Score, 0.4)
	assert.Equal(t, domain.ActivityRef{ID: "a1", Timestamp: ts}, r.Ref)
}

func TestActivityResult_CategoryFallback(t *testing.T) {
	a := domain.Activity{Action: "create", Category: "project", Title: "Created"}

	r := activityResult(a, "proj")

	assert.Equal(t, "project", r.Snippet)
	assert.InDelta(t, 0.4, r.Score, 1e-9)
}
