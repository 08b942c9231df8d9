package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Change is one observed edit to a watched prompt file.
type Change struct {
	Path    string
	Content string
}

// Watcher reloads on-disk prompt files when they are edited, so
// long-running review daemons pick up prompt changes without a restart.
type Watcher struct {
	watcher *fsnotify.Watcher
	watched map[string]struct{}
	logger  *slog.Logger
}

// NewWatcher creates a watcher for the given prompt files.
// Remote (URL) sources cannot be watched and must not be passed here.
func NewWatcher(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		watched: make(map[string]struct{}, len(paths)),
		logger:  slog.Default(),
	}

	// Watch parent directories; editors replace files on save, which
	// drops a watch registered on the file itself.
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		w.watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// WithLogger sets the logger for watch diagnostics.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Watch sends a Change for every write to a watched file until the
// context is cancelled. The channel is closed on return.
func (w *Watcher) Watch(ctx context.Context) <-chan Change {
	ch := make(chan Change, 8)

	go func() {
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				if _, watched := w.watched[abs]; !watched {
					continue
				}

				content, err := os.ReadFile(abs)
				if err != nil {
					w.logger.Warn("prompt file changed but could not be read",
						slog.String("path", abs),
						slog.String("error", err.Error()))
					continue
				}

				w.logger.Debug("prompt file reloaded", slog.String("path", abs))
				select {
				case ch <- Change{Path: abs, Content: string(content)}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				// Usually recoverable; keep watching.
				w.logger.Warn("prompt watcher error", slog.String("error", err.Error()))
			}
		}
	}()

	return ch
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
