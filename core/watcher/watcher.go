package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/scriptexport/core/logger"
)

// FileWatcher watches a directory tree and reports changed files in
// batches, one batch per quiet period of length debounce.
type FileWatcher struct {
	watcher       *fsnotify.Watcher
	rootDir       string
	excludePaths  []string
	debounce      time.Duration
	debounceTimer *time.Timer
	pending       map[string]bool
	mutex         sync.Mutex
	onChange      func(changed []string)
}

func NewFileWatcher(rootDir string, excludePaths []string, debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}

	return &FileWatcher{
		watcher:      watcher,
		rootDir:      absRoot,
		excludePaths: excludePaths,
		debounce:     debounce,
		pending:      make(map[string]bool),
		onChange:     func([]string) {},
	}, nil
}

// OnChange sets the callback receiving each debounced batch of absolute
// paths, sorted.
func (fw *FileWatcher) OnChange(fn func(changed []string)) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.onChange = fn
}

// Watch blocks until ctx is done or the underlying watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.rootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if fw.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					if err := fw.addWatchersRecursively(event.Name); err != nil {
						logger.Error("Watcher: %v", err)
					}
					continue
				}
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				fw.queue(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) queue(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	fw.pending[path] = true

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debounce, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mutex.Lock()
	changed := make([]string, 0, len(fw.pending))
	for path := range fw.pending {
		changed = append(changed, path)
	}
	fw.pending = make(map[string]bool)
	onChange := fw.onChange
	fw.mutex.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	onChange(changed)
}

func (fw *FileWatcher) Close() error {
	fw.mutex.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.mutex.Unlock()

	return fw.watcher.Close()
}

// shouldExcludePath matches exclude entries either as a path prefix relative
// to the root or as any single path segment (so "__pycache__" excludes every
// such directory).
func (fw *FileWatcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fw.rootDir, path)
	if err != nil {
		return false
	}

	relPath = filepath.Clean(relPath)
	segments := strings.Split(relPath, string(filepath.Separator))

	for _, excludePath := range fw.excludePaths {
		excludePath = filepath.Clean(excludePath)

		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
		for _, segment := range segments {
			if segment == excludePath {
				return true
			}
		}
	}

	return false
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if path != fw.rootDir && fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
