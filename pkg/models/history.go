package models

import "time"

// HistoryRecord is one completed query as stored in the history log.
type HistoryRecord struct {
	ID         int64     `json:"id"`
	ToolID     int       `json:"tool_id"`
	ToolName   string    `json:"tool_name"`
	Target     string    `json:"target"`
	Cached     bool      `json:"cached"`
	Status     string    `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToolSummary aggregates history records per tool.
type ToolSummary struct {
	ToolID    int       `json:"tool_id"`
	ToolName  string    `json:"tool_name"`
	Requests  int64     `json:"requests"`
	CacheHits int64     `json:"cache_hits"`
	Errors    int64     `json:"errors"`
	LastUsed  time.Time `json:"last_used"`
}
