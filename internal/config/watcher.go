package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it or any file it includes changes on
// disk and delivers each valid result on Updates. Invalid edits are logged
// and skipped; the last good config stays in effect.
type Watcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	updates chan *LoadResult

	mainDir string
	files   map[string]struct{}
	dirs    map[string]struct{}
}

// NewWatcher watches the directories holding path and its includes, since
// editors often replace files rather than writing them in place.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	canon, err := canonicalPath(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	mainDir := filepath.Dir(canon)
	if err := fsw.Add(mainDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", mainDir, err)
	}

	w := &Watcher{
		path:    path,
		logger:  logger,
		watcher: fsw,
		updates: make(chan *LoadResult, 1),
		mainDir: mainDir,
		files:   map[string]struct{}{canon: {}},
		dirs:    map[string]struct{}{mainDir: {}},
	}
	if res, err := LoadFromPath(path); err == nil {
		w.track(res.Files)
	}
	return w, nil
}

// track adds files, and the directories holding them, to the watch set.
func (w *Watcher) track(files []string) {
	for _, f := range files {
		w.files[f] = struct{}{}
		dir := filepath.Dir(f)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("cannot watch include directory", "dir", dir, "error", err)
			continue
		}
		w.dirs[dir] = struct{}{}
	}
}

// relevant reports whether an event on name can change the loaded config:
// a tracked file, or a new YAML file in an include directory.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if _, ok := w.files[name]; ok {
		return true
	}
	dir := filepath.Dir(name)
	if dir == w.mainDir {
		return false
	}
	if _, ok := w.dirs[dir]; !ok {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Updates delivers reloaded configs. Only the newest pending result is kept.
func (w *Watcher) Updates() <-chan *LoadResult { return w.updates }

// Run processes file events until ctx is cancelled, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	res, err := LoadFromPath(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", "error", err)
		return
	}
	w.logger.Debug("config reloaded", "path", w.path, "files", len(res.Files))
	w.track(res.Files)

	// Replace any result the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- res
}
