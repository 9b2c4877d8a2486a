package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// ErrWatchFailed is returned when the file watcher cannot be set up.
var ErrWatchFailed = errors.New("failed to watch configuration files")

// Watch reloads the configuration whenever one of its layers changes and
// passes every successful result to onChange. New files matching a glob
// layer count as changes. Failed reloads are logged and skipped so the last
// good configuration stays in use. Watch blocks until ctx is done.
//
// Only the directories of the layers are watched; included files and
// subdirectories reached through ** are not.
func (l *Loader) Watch(ctx context.Context, onChange func(*config.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}

	defer func() { _ = watcher.Close() }()

	targets, err := l.watchTargets()
	if err != nil {
		return err
	}

	for _, dir := range targets.dirs {
		err = watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWatchFailed, dir, err)
		}

		slog.Debug("watching configuration directory", slog.String("dir", dir))
	}

	debounce := l.options.WatchDebounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !targets.matches(event.Name) {
				continue
			}

			slog.Debug("configuration file changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))

			reload = time.After(debounce)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("configuration watcher error", "error", watchErr)
		case <-reload:
			reload = nil

			cfg, loadErr := l.Load()
			if loadErr != nil {
				slog.Warn("configuration reload failed, keeping previous configuration", "error", loadErr)

				continue
			}

			slog.Info("configuration reloaded")
			onChange(cfg)
		}
	}
}

type watchTargets struct {
	dirs     []string
	files    map[string]bool
	patterns []string
}

func (l *Loader) watchTargets() (*watchTargets, error) {
	targets := &watchTargets{dirs: nil, files: make(map[string]bool), patterns: nil}
	seen := make(map[string]bool)

	for _, layer := range l.options.Layers {
		abs, err := filepath.Abs(layer.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
		}

		dir := filepath.Dir(abs)

		if layer.Glob {
			base, _ := doublestar.SplitPattern(filepath.ToSlash(abs))
			dir = filepath.FromSlash(base)
			targets.patterns = append(targets.patterns, filepath.ToSlash(abs))
		} else {
			targets.files[abs] = true
		}

		if !seen[dir] {
			seen[dir] = true
			targets.dirs = append(targets.dirs, dir)
		}
	}

	return targets, nil
}

func (t *watchTargets) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}

	if t.files[abs] {
		return true
	}

	for _, pattern := range t.patterns {
		matched, _ := doublestar.Match(pattern, filepath.ToSlash(abs))
		if matched {
			return true
		}
	}

	return false
}
