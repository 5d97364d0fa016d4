package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/cache"
	"github.com/tristendillon/scriptexport/core/graph"
	"github.com/tristendillon/scriptexport/core/logger"
)

// Rebundler rebuilds a bundle when a file that took part in the previous
// build changes content. A failed rebuild leaves the previous bundle on disk
// and keeps the previous dependency graph as the set of tracked files.
type Rebundler struct {
	rootPath        string
	projectRootPath string
	outputPath      string
	opts            []bundler.Option

	content *cache.ContentCache
	graph   *graph.DependencyGraph
	ignored map[string]bool
	failed  bool
	mutex   sync.Mutex
}

func NewRebundler(rootPath, projectRootPath, outputPath string, opts ...bundler.Option) *Rebundler {
	r := &Rebundler{
		rootPath:        rootPath,
		projectRootPath: projectRootPath,
		outputPath:      outputPath,
		opts:            opts,
		content:         cache.NewContentCache(),
		graph:           graph.NewDependencyGraph(),
		ignored:         make(map[string]bool),
	}
	r.Ignore(outputPath)
	return r
}

// Ignore drops changes to paths this process writes itself, such as the
// bundle or a log file, so they never trigger a rebuild.
func (r *Rebundler) Ignore(paths ...string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			r.ignored[abs] = true
		}
	}
}

// Run bundles unconditionally and starts tracking the files involved.
func (r *Rebundler) Run() (*bundler.Result, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.run()
}

func (r *Rebundler) run() (*bundler.Result, error) {
	exporter := bundler.NewExporter(r.rootPath, r.projectRootPath, r.opts...)
	result, err := exporter.Bundle(r.outputPath)
	r.failed = err != nil
	if err != nil {
		return nil, err
	}

	next := exporter.Graph()
	for _, path := range r.graph.Nodes() {
		if !next.Has(path) {
			r.content.RemoveContent(path)
		}
	}
	if err := r.content.Track(next.Nodes()); err != nil {
		return nil, fmt.Errorf("failed to track bundled files: %w", err)
	}

	r.graph = next
	stats := r.content.GetStats()
	logger.Debug("Tracking %d files (content cache: %d entries, %d hits, %d misses, %.0f%% hit rate)",
		r.graph.Len(), stats.TotalFiles, stats.CacheHits, stats.CacheMisses, stats.HitRate)
	return result, nil
}

// HandleChanges rebundles if any tracked path among changed has different
// content than at the last build, or on any change at all after a failed
// build (the fix may be a file the failed build never reached). Ignored
// paths never count as a change. It returns a nil result when nothing
// relevant changed.
func (r *Rebundler) HandleChanges(changed []string) (*bundler.Result, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var relevant, modified []string
	for _, path := range changed {
		abs, err := filepath.Abs(path)
		if err != nil || r.ignored[abs] {
			continue
		}
		relevant = append(relevant, abs)
		if !r.graph.Has(abs) {
			continue
		}
		_, contentChanged, err := r.content.UpdateContent(abs)
		if err != nil {
			return nil, err
		}
		if contentChanged {
			modified = append(modified, abs)
		}
	}

	if len(relevant) == 0 {
		return nil, nil
	}

	if r.failed {
		logger.Info("Retrying after previous failure")
		return r.run()
	}

	if len(modified) == 0 {
		logger.Debug("No bundled file changed content, skipping rebuild")
		return nil, nil
	}

	for _, path := range modified {
		affected := r.graph.GetAffectedFiles(path)
		if len(affected) > 0 {
			logger.Info("%s changed (imported by %s)", r.relPath(path), strings.Join(r.relPaths(affected), ", "))
		} else {
			logger.Info("%s changed", r.relPath(path))
		}
	}

	return r.run()
}

// Tracked reports whether path took part in the last successful build.
func (r *Rebundler) Tracked(path string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return r.graph.Has(abs)
}

func (r *Rebundler) relPath(path string) string {
	root, err := filepath.Abs(r.projectRootPath)
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func (r *Rebundler) relPaths(paths []string) []string {
	rel := make([]string, len(paths))
	for i, path := range paths {
		rel[i] = r.relPath(path)
	}
	return rel
}
