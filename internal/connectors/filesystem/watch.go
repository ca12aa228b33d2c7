package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mission-control/internal/logger"
)

// Watch emits the paths of changed note files until ctx is cancelled.
// The root note file is watched through its parent directory so that
// editors replacing the file are still seen.
func (n *Notes) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(n.rootFile)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(n.rootFile), err)
	}
	if _, err := os.Stat(n.dir); err == nil {
		if err := watcher.Add(n.dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", n.dir, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", n.dir, err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				path, ok := n.handleFsEvent(event)
				if !ok {
					continue
				}
				select {
				case changes <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Note watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent reports whether event touches a note file.
func (n *Notes) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	path := filepath.Clean(event.Name)
	if path == n.rootFile {
		return path, true
	}
	if filepath.Dir(path) == n.dir && strings.HasSuffix(path, noteExt) {
		return path, true
	}
	return "", false
}
