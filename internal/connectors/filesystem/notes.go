// Package filesystem reads memory notes from local markdown files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/mission-control/internal/core/domain"
	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
	"github.com/custodia-labs/mission-control/internal/logger"
)

// Ensure Notes implements the interfaces.
var (
	_ driven.NoteSource  = (*Notes)(nil)
	_ driven.NoteWatcher = (*Notes)(nil)
)

const noteExt = ".md"

var lineBreak = regexp.MustCompile(`\r?\n`)

// Notes scans the root note file and the markdown files of the notes directory.
type Notes struct {
	rootFile string
	dir      string
	maxBytes int64
}

// New creates a note source from settings. An empty root means the
// current working directory.
func New(settings domain.NotesSettings) (*Notes, error) {
	root := settings.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		root = wd
	}

	rootFile := settings.RootFile
	if rootFile == "" {
		rootFile = domain.DefaultNotesRootFile
	}
	dir := settings.Dir
	if dir == "" {
		dir = domain.DefaultNotesDir
	}
	maxBytes := settings.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxNoteBytes
	}

	return &Notes{
		rootFile: filepath.Join(root, rootFile),
		dir:      filepath.Join(root, dir),
		maxBytes: maxBytes,
	}, nil
}

// Scan returns one match per note file with at least one line containing query.
func (n *Notes) Scan(ctx context.Context, query string) ([]domain.NoteMatch, error) {
	files, err := n.files()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []domain.NoteMatch
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok, err := n.scanFile(path, needle)
		if err != nil {
			logger.Warn("Failed to search memory file %s: %v", path, err)
			continue
		}
		if ok {
			matches = append(matches, m)
		}
	}

	logger.Debug("Scanned %d note files, %d matched", len(files), len(matches))
	return matches, nil
}

// files lists the root note file followed by the notes directory's
// markdown files. Missing paths are not errors.
func (n *Notes) files() ([]string, error) {
	var files []string
	if _, err := os.Stat(n.rootFile); err == nil {
		files = append(files, n.rootFile)
	}

	entries, err := os.ReadDir(n.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrNotesUnavailable, n.dir, err)
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), noteExt) {
			files = append(files, filepath.Join(n.dir, entry.Name()))
		}
	}
	return files, nil
}

func (n *Notes) scanFile(path, needle string) (domain.NoteMatch, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.NoteMatch{}, false, err
	}
	if info.Size() > n.maxBytes {
		logger.Debug("Skipping %s: %d bytes exceeds limit", path, info.Size())
		return domain.NoteMatch{}, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.NoteMatch{}, false, err
	}

	m := domain.NoteMatch{Path: path, FileName: filepath.Base(path)}
	for i, line := range lineBreak.Split(string(content), -1) {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		m.MatchCount++
		if m.MatchCount == 1 {
			m.FirstLine = line
			m.FirstLineNo = i + 1
		}
	}
	return m, m.MatchCount > 0, nil
}
