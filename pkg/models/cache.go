package models

import "time"

// CacheStats reports the state of the response cache.
type CacheStats struct {
	Enabled        bool          `json:"enabled"`
	TotalEntries   int64         `json:"total_entries"`
	ExpiredEntries int64         `json:"expired_entries"`
	ActiveEntries  int64         `json:"active_entries"`
	TotalHits      int64         `json:"total_hits"`
	SizeBytes      int64         `json:"size_bytes"`
	TTL            time.Duration `json:"ttl"`
	Directory      string        `json:"directory"`
}

// TopTarget is a frequently requested target as reported by the cache.
type TopTarget struct {
	Target string `json:"target"`
	ToolID int    `json:"tool_id"`
	Hits   int64  `json:"hits"`
}
