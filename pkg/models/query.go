package models

import "time"

// QueryResult holds a single API response plus query metadata.
type QueryResult struct {
	Tool      string    `json:"tool"`
	Target    string    `json:"target"`
	Data      string    `json:"data"`
	Cached    bool      `json:"cached"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchResult is the outcome for one target in a batch run.
type BatchResult struct {
	Target  string `json:"target"`
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
