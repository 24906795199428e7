package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/project"
	"github.com/tristendillon/approute/core/shared"
)

// Invalidator drops cached parse results for a file.
type Invalidator interface {
	InvalidateFile(path string)
}

type FileWatcher interface {
	Watch(ctx context.Context) error
	Close() error
}

// FileWatcherImpl turns raw filesystem events below the routing root, and
// optionally VCS metadata changes, into debounced OnChange calls.
type FileWatcherImpl struct {
	watcher     *fsnotify.Watcher
	RouteRoot   string
	GitDir      string
	Exclude     []string
	Invalidator Invalidator
	debouncer   *Debouncer
}

func NewFileWatcher(projectDir, routeRoot string, cfg *config.Config, onChange func()) (*FileWatcherImpl, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcherImpl{
		watcher:   w,
		RouteRoot: filepath.Clean(routeRoot),
		Exclude:   cfg.ExcludeNames(),
		debouncer: NewDebouncer(cfg.Watch.Debounce, func() {
			logger.Debug("File changes settled, rescanning...")
			onChange()
		}),
	}
	if cfg.Watch.VCS {
		gitDir := filepath.Join(projectDir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			fw.GitDir = gitDir
		}
	}
	return fw, nil
}

// Watch registers the routing root and blocks dispatching events until ctx
// is done or the watcher is closed.
func (fw *FileWatcherImpl) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.RouteRoot); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}
	if fw.GitDir != "" {
		fw.addVCSWatchers()
	}
	logger.Info("Watching %s", fw.RouteRoot)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handle(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcherImpl) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	if fw.isVCSPath(event.Name) {
		if fw.isVCSSignal(event.Name) {
			logger.Debug("VCS event: %s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				fw.addIfDir(event.Name)
			}
			fw.debouncer.Trigger()
		}
		return
	}

	if fw.shouldExcludePath(event.Name) {
		return
	}
	logger.Debug("File event: %s %s", event.Op, event.Name)

	if fw.Invalidator != nil && project.IsHandlerFile(event.Name) {
		fw.Invalidator.InvalidateFile(event.Name)
		logger.Debug("Invalidated cache for route file: %s", event.Name)
	}

	if event.Has(fsnotify.Create) {
		fw.addIfDir(event.Name)
	}

	fw.debouncer.Trigger()
}

func (fw *FileWatcherImpl) addIfDir(path string) {
	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		logger.Debug("Adding watcher for new directory: %s", path)
		if err := fw.addWatchersRecursively(path); err != nil {
			logger.Warn("Failed to watch %s: %v", path, err)
		}
	}
}

func (fw *FileWatcherImpl) Close() error {
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// shouldExcludePath reports whether any component of path below the routing
// root is an ignored name.
func (fw *FileWatcherImpl) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fw.RouteRoot, path)
	if err != nil {
		return false
	}

	for _, part := range strings.Split(filepath.Clean(relPath), string(filepath.Separator)) {
		for _, ex := range fw.Exclude {
			if part == ex {
				return true
			}
		}
	}
	return false
}

func (fw *FileWatcherImpl) addWatchersRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != fw.RouteRoot && fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}

// addVCSWatchers watches .git for HEAD moves and .git/refs for branch updates.
func (fw *FileWatcherImpl) addVCSWatchers() {
	if err := fw.watcher.Add(fw.GitDir); err != nil {
		logger.Warn("Failed to watch %s: %v", fw.GitDir, err)
		return
	}
	refs := filepath.Join(fw.GitDir, "refs")
	filepath.WalkDir(refs, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := fw.watcher.Add(path); err != nil {
			logger.Warn("Failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func (fw *FileWatcherImpl) isVCSPath(path string) bool {
	return fw.GitDir != "" && shared.IsWithin(fw.GitDir, path)
}

// isVCSSignal reports whether a change inside .git means the checkout moved.
func (fw *FileWatcherImpl) isVCSSignal(path string) bool {
	rel, err := filepath.Rel(fw.GitDir, path)
	if err != nil {
		return false
	}
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	return rel == "HEAD" || rel == "refs" || strings.HasPrefix(rel, "refs"+string(filepath.Separator))
}
