package cache

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tristendillon/scriptexport/core/logger"
)

// ContentCache remembers the content hash of every file that went into the
// last bundle so watch mode can ignore events that did not change anything
// (editor touch, chmod, atomic save of identical bytes).
type ContentCache struct {
	entries map[string]*ContentEntry
	mutex   sync.RWMutex
	stats   struct {
		hits   int64
		misses int64
	}
}

// NewContentCache creates a new content cache
func NewContentCache() *ContentCache {
	return &ContentCache{
		entries: make(map[string]*ContentEntry),
	}
}

// UpdateContent checks if file content has changed and updates entry
func (cc *ContentCache) UpdateContent(filePath string) (*ContentEntry, bool, error) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if existing, exists := cc.entries[filePath]; exists {
				logger.Debug("ContentCache: File deleted: %s", filePath)
				delete(cc.entries, filePath)
				existing.Exists = false
				return existing, true, nil
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	existing, exists := cc.entries[filePath]
	if !exists {
		logger.Debug("ContentCache: New file detected: %s", filePath)
		cc.stats.misses++
		entry, err := createContentEntry(filePath, stat)
		if err != nil {
			return nil, false, err
		}
		cc.entries[filePath] = entry
		return entry, true, nil
	}

	if stat.Size() == existing.Size && stat.ModTime().Equal(existing.ModTime) {
		cc.stats.hits++
		return existing, false, nil
	}

	newHash, err := calculateFileHash(filePath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to calculate hash for %s: %w", filePath, err)
	}

	entry := &ContentEntry{
		FilePath:    filePath,
		ContentHash: newHash,
		ModTime:     stat.ModTime(),
		Size:        stat.Size(),
		Exists:      true,
	}
	cc.entries[filePath] = entry

	if newHash != existing.ContentHash {
		logger.Debug("ContentCache: Content changed for %s (hash: %s -> %s)", filePath, existing.ContentHash[:8], newHash[:8])
		cc.stats.misses++
		return entry, true, nil
	}

	cc.stats.hits++
	return entry, false, nil
}

// Track records the current state of every path, replacing any previous
// entries for them. Returns the first error met.
func (cc *ContentCache) Track(paths []string) error {
	for _, path := range paths {
		if _, _, err := cc.UpdateContent(path); err != nil {
			return err
		}
	}
	return nil
}

// RemoveContent removes entry for deleted files
func (cc *ContentCache) RemoveContent(filePath string) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	if _, exists := cc.entries[filePath]; exists {
		delete(cc.entries, filePath)
		logger.Debug("ContentCache: Removed entry for %s", filePath)
	}
}

// GetStats returns cache statistics
func (cc *ContentCache) GetStats() *CacheStats {
	cc.mutex.RLock()
	defer cc.mutex.RUnlock()

	total := cc.stats.hits + cc.stats.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(cc.stats.hits) / float64(total) * 100
	}

	return &CacheStats{
		TotalFiles:  len(cc.entries),
		CacheHits:   cc.stats.hits,
		CacheMisses: cc.stats.misses,
		HitRate:     hitRate,
	}
}

func createContentEntry(filePath string, stat os.FileInfo) (*ContentEntry, error) {
	hash, err := calculateFileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash for %s: %w", filePath, err)
	}

	return &ContentEntry{
		FilePath:    filePath,
		ContentHash: hash,
		ModTime:     stat.ModTime(),
		Size:        stat.Size(),
		Exists:      true,
	}, nil
}

// calculateFileHash computes MD5 hash of file content
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
