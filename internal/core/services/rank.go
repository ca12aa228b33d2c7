package services

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/custodia-labs/mission-control/internal/core/domain"
)

// snippetMaxChars bounds snippets and fallback excerpts.
const snippetMaxChars = domain.DefaultSnippetMaxChars

// Score bases per domain before field bonuses.
const (
	noteBaseScore       = 0.55
	noteLineBonus       = 0.05
	noteFileNameBonus   = 0.15
	projectBaseScore    = 0.5
	taskBaseScore       = 0.45
	activityBaseScore   = 0.4
	fieldMatchBaseScore = 0.3
	fieldPositionWeight = 0.2
)

// lowerRunes lower-cases rune by rune so indexes line up with the input.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// matchIndex returns the rune offset of the first case-insensitive
// occurrence of needle in haystack. An empty haystack never matches.
func matchIndex(haystack, needle string) (int, bool) {
	if haystack == "" {
		return 0, false
	}
	h := lowerRunes(haystack)
	n := lowerRunes(needle)
	if len(n) > len(h) {
		return 0, false
	}

outer:
	for i := 0; i+len(n) <= len(h); i++ {
		for j := range n {
			if h[i+j] != n[j] {
				continue outer
			}
		}
		return i, true
	}
	return 0, false
}

// containsFold reports whether haystack contains needle, ignoring case.
func containsFold(haystack, needle string) bool {
	_, ok := matchIndex(haystack, needle)
	return ok
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// buildSnippet extracts at most maxLength runes of text around the first
// match of query, marking cut edges with "...". Without a match the head
// of the text is returned as is.
func buildSnippet(text, query string, maxLength int) string {
	idx, ok := matchIndex(text, query)
	if !ok {
		return truncateRunes(text, maxLength)
	}

	runes := []rune(text)
	start := max(0, idx-maxLength/3)
	end := min(len(runes), start+maxLength)

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(strings.TrimSpace(string(runes[start:end])))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String()
}

// bestSnippet snippets the first text containing query. Failing that it
// returns the head of the first non-empty text.
func bestSnippet(texts []string, query string) string {
	for _, text := range texts {
		if containsFold(text, query) {
			return buildSnippet(text, query, snippetMaxChars)
		}
	}
	for _, text := range texts {
		if text != "" {
			return truncateRunes(text, snippetMaxChars)
		}
	}
	return ""
}

// scoreMatch rates one field: 0 without a match, otherwise 0.3 to 0.5
// with earlier matches scoring higher.
func scoreMatch(text, query string) float64 {
	idx, ok := matchIndex(text, query)
	if !ok {
		return 0
	}
	length := max(1, len([]rune(text)))
	bonus := math.Max(0, 1-float64(idx)/float64(length))
	return fieldMatchBaseScore + bonus*fieldPositionWeight
}

func clampScore(score float64) float64 {
	return math.Min(1, math.Max(0, score))
}

func scoreNote(m domain.NoteMatch, query string) float64 {
	score := noteBaseScore + float64(m.MatchCount)*noteLineBonus
	if containsFold(m.FileName, query) {
		score += noteFileNameBonus
	}
	return clampScore(score)
}

func noteResult(m domain.NoteMatch, query string) domain.Result {
	return domain.Result{
		Kind:    domain.KindMemory,
		Title:   m.FileName,
		Snippet: buildSnippet(m.FirstLine, query, snippetMaxChars),
		Score:   scoreNote(m, query),
		Ref:     domain.NoteRef{Path: m.Path, Line: m.FirstLineNo},
	}
}

func projectResult(p domain.Project, query string) domain.Result {
	score := projectBaseScore + scoreMatch(p.Title, query) + scoreMatch(p.Description, query)

	snippet := bestSnippet([]string{p.Description, p.Title}, query)
	if p.DueDate != nil {
		due := "Due " + p.DueDate.UTC().Format(time.DateOnly)
		snippet = strings.TrimSpace(snippet + " " + due)
	}

	return domain.Result{
		Kind:    domain.KindProject,
		Title:   p.Title,
		Snippet: snippet,
		Score:   clampScore(score),
		Ref:     domain.RecordRef{ID: p.ID},
	}
}

func taskResult(m domain.TaskMatch, query string) domain.Result {
	score := taskBaseScore + scoreMatch(m.Task.Title, query) + scoreMatch(m.ProjectTitle, query)

	snippet := buildSnippet(m.Task.Title, query, snippetMaxChars)
	if m.ProjectTitle != "" {
		snippet += "\nProject: " + m.ProjectTitle
	}

	return domain.Result{
		Kind:    domain.KindTask,
		Title:   m.Task.Title,
		Snippet: snippet,
		Score:   clampScore(score),
		Ref:     domain.RecordRef{ID: m.Task.ID},
	}
}

func activityResult(a domain.Activity, query string) domain.Result {
	score := activityBaseScore +
		scoreMatch(a.Title, query) +
		scoreMatch(a.Description, query) +
		scoreMatch(a.Action, query)

	return domain.Result{
		Kind:    domain.KindActivity,
		Title:   a.Title,
		Snippet: bestSnippet([]string{a.Description, a.Action, a.Category}, query),
		Score:   clampScore(score),
		Ref:     domain.ActivityRef{ID: a.ID, Timestamp: a.Timestamp},
	}
}
