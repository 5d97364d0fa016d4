package cache

import "time"

// ContentEntry tracks the last seen state of one file
type ContentEntry struct {
	FilePath    string
	ContentHash string
	ModTime     time.Time
	Size        int64
	Exists      bool
}

// CacheStats provides metrics about cache performance
type CacheStats struct {
	TotalFiles  int
	CacheHits   int64
	CacheMisses int64
	HitRate     float64
}
