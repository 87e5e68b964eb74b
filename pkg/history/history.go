// Package history keeps a local log of completed API queries.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

const dbFileName = "history.db"

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tool_id INTEGER NOT NULL,
	tool_name TEXT NOT NULL,
	target TEXT NOT NULL,
	cached INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at);
`

// Log records queries in a SQLite database. Like the response cache it is
// an optional convenience: recording failures are logged and swallowed so
// they never fail the query that triggered them.
type Log struct {
	db      *sql.DB
	enabled bool
	logger  zerolog.Logger
}

// New opens (or creates) the history database under dir. A disabled log
// never touches disk.
func New(dir string, enabled bool, logger zerolog.Logger) (*Log, error) {
	l := &Log{enabled: enabled, logger: logger}
	if !enabled {
		return l, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(createHistoryTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	l.db = db
	return l, nil
}

// Record stores one completed query.
func (l *Log) Record(ctx context.Context, rec models.HistoryRecord) {
	if !l.enabled {
		return
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO history (tool_id, tool_name, target, cached, status, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ToolID, rec.ToolName, rec.Target, rec.Cached, rec.Status, rec.DurationMS, createdAt.Unix(),
	)
	if err != nil {
		l.logger.Error().Err(err).Msg("history record failed")
	}
}

// Recent returns up to limit records, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if !l.enabled {
		return nil, nil
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, tool_id, tool_name, target, cached, status, duration_ms, created_at
		 FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var recs []models.HistoryRecord
	for rows.Next() {
		var r models.HistoryRecord
		var created int64
		if err := rows.Scan(&r.ID, &r.ToolID, &r.ToolName, &r.Target, &r.Cached, &r.Status, &r.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Summary aggregates history per tool.
func (l *Log) Summary(ctx context.Context) ([]models.ToolSummary, error) {
	if !l.enabled {
		return nil, nil
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT tool_id, tool_name,
		       COUNT(*),
		       SUM(CASE WHEN cached THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END),
		       MAX(created_at)
		FROM history
		GROUP BY tool_id, tool_name
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history summary: %w", err)
	}
	defer rows.Close()

	var sums []models.ToolSummary
	for rows.Next() {
		var s models.ToolSummary
		var last int64
		if err := rows.Scan(&s.ToolID, &s.ToolName, &s.Requests, &s.CacheHits, &s.Errors, &last); err != nil {
			return nil, fmt.Errorf("scan history summary: %w", err)
		}
		s.LastUsed = time.Unix(last, 0).UTC()
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// Close releases the database connection. Safe on a disabled log.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}
