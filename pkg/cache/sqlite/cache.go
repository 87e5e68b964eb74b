// Package sqlite implements the response cache for HackerTarget API results.
//
// Entries are keyed by (tool id, lower-cased target) and carry a TTL. The
// cache is an optimization, not a correctness-critical path: every operation
// except construction swallows storage errors, logs them, and falls back to
// a benign default so a broken cache degrades to a cache miss.
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

const dbFileName = "cache.db"

const createCacheTable = `
CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL,
	tool_id INTEGER,
	target TEXT,
	hits INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_expires_at ON cache(expires_at);
`

// Cache is a TTL response cache backed by a single SQLite file.
type Cache struct {
	db      *sql.DB
	dir     string
	ttl     time.Duration
	enabled bool
	logger  zerolog.Logger

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// New creates a Cache rooted at dir. A disabled cache never touches disk
// and every operation on it is a no-op. Schema initialization failure is
// the one error that propagates: a cache that cannot create its table is
// unusable.
func New(dir string, ttl time.Duration, enabled bool, logger zerolog.Logger) (*Cache, error) {
	c := &Cache{
		dir:     dir,
		ttl:     ttl,
		enabled: enabled,
		logger:  logger,
		now:     time.Now,
	}
	if !enabled {
		logger.Debug().Msg("cache is disabled")
		return c, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", c.dbPath())
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	c.db = db
	logger.Debug().Str("path", c.dbPath()).Dur("ttl", ttl).Msg("cache initialized")
	return c, nil
}

func (c *Cache) dbPath() string {
	return filepath.Join(c.dir, dbFileName)
}

// Enabled reports whether the cache is active.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// Key derives the cache key for a tool and target. Targets are
// case-insensitive, so the key is a digest of the lower-cased form.
func Key(toolID int, target string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", toolID, strings.ToLower(target))))
	return fmt.Sprintf("%x", sum)
}

// Get returns the cached value for (toolID, target) if present and
// unexpired. A valid hit increments the entry's hit counter. An expired
// entry is deleted lazily here rather than by any background sweep.
func (c *Cache) Get(toolID int, target string) (string, bool) {
	if !c.enabled {
		return "", false
	}

	key := Key(toolID, target)

	var value string
	var expiresAt int64
	err := c.db.QueryRow(
		`SELECT value, expires_at FROM cache WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		c.logger.Debug().Int("tool", toolID).Str("target", target).Msg("cache miss")
		return "", false
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("cache get failed")
		return "", false
	}

	if c.now().Unix() >= expiresAt {
		if _, err := c.db.Exec(`DELETE FROM cache WHERE key = ?`, key); err != nil {
			c.logger.Error().Err(err).Msg("cache expired-entry delete failed")
		}
		c.logger.Debug().Int("tool", toolID).Str("target", target).Msg("cache expired")
		return "", false
	}

	if _, err := c.db.Exec(`UPDATE cache SET hits = hits + 1 WHERE key = ?`, key); err != nil {
		c.logger.Error().Err(err).Msg("cache hit-count update failed")
	}
	c.logger.Debug().Int("tool", toolID).Str("target", target).Msg("cache hit")
	return value, true
}

// Set upserts the value for (toolID, target), resetting the hit counter.
// It returns false when the cache is disabled or the write failed.
func (c *Cache) Set(toolID int, target, value string) bool {
	if !c.enabled {
		return false
	}

	target = strings.ToLower(target)
	createdAt := c.now().Unix()
	expiresAt := createdAt + int64(c.ttl.Seconds())

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO cache (key, value, created_at, expires_at, tool_id, target, hits)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		Key(toolID, target), value, createdAt, expiresAt, toolID, target,
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("cache set failed")
		return false
	}
	return true
}

// Delete removes the entry for (toolID, target) and reports whether a row
// was actually removed.
func (c *Cache) Delete(toolID int, target string) bool {
	if !c.enabled {
		return false
	}

	res, err := c.db.Exec(`DELETE FROM cache WHERE key = ?`, Key(toolID, target))
	if err != nil {
		c.logger.Error().Err(err).Msg("cache delete failed")
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		c.logger.Error().Err(err).Msg("cache delete failed")
		return false
	}
	return n > 0
}

// Clear removes all entries unconditionally.
func (c *Cache) Clear() bool {
	if !c.enabled {
		return false
	}

	if _, err := c.db.Exec(`DELETE FROM cache`); err != nil {
		c.logger.Error().Err(err).Msg("cache clear failed")
		return false
	}
	return true
}

// Cleanup removes every expired entry and returns the number removed.
func (c *Cache) Cleanup() int {
	if !c.enabled {
		return 0
	}

	res, err := c.db.Exec(`DELETE FROM cache WHERE expires_at <= ?`, c.now().Unix())
	if err != nil {
		c.logger.Error().Err(err).Msg("cache cleanup failed")
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		c.logger.Error().Err(err).Msg("cache cleanup failed")
		return 0
	}
	if n > 0 {
		c.logger.Info().Int64("removed", n).Msg("cleaned up expired cache entries")
	}
	return int(n)
}

// Stats summarizes the cache contents. A disabled cache reports a fixed
// zero summary; storage errors degrade to whatever was gathered so far.
func (c *Cache) Stats() models.CacheStats {
	if !c.enabled {
		return models.CacheStats{Enabled: false}
	}

	stats := models.CacheStats{
		Enabled:   true,
		TTL:       c.ttl,
		Directory: c.dir,
	}
	now := c.now().Unix()

	if err := c.db.QueryRow(`SELECT COUNT(*) FROM cache`).Scan(&stats.TotalEntries); err != nil {
		c.logger.Error().Err(err).Msg("cache stats failed")
		return stats
	}
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM cache WHERE expires_at <= ?`, now).Scan(&stats.ExpiredEntries); err != nil {
		c.logger.Error().Err(err).Msg("cache stats failed")
		return stats
	}
	if err := c.db.QueryRow(`SELECT COALESCE(SUM(hits), 0) FROM cache`).Scan(&stats.TotalHits); err != nil {
		c.logger.Error().Err(err).Msg("cache stats failed")
		return stats
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries

	if fi, err := os.Stat(c.dbPath()); err == nil {
		stats.SizeBytes = fi.Size()
	}
	return stats
}

// TopTargets returns up to limit unexpired entries ordered by hit count
// descending.
func (c *Cache) TopTargets(limit int) []models.TopTarget {
	if !c.enabled {
		return nil
	}

	rows, err := c.db.Query(
		`SELECT target, tool_id, hits FROM cache WHERE expires_at > ? ORDER BY hits DESC LIMIT ?`,
		c.now().Unix(), limit,
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("cache top targets failed")
		return nil
	}
	defer rows.Close()

	var top []models.TopTarget
	for rows.Next() {
		var t models.TopTarget
		if err := rows.Scan(&t.Target, &t.ToolID, &t.Hits); err != nil {
			c.logger.Error().Err(err).Msg("cache top targets failed")
			return top
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		c.logger.Error().Err(err).Msg("cache top targets failed")
	}
	return top
}

// Close releases the database connection. Safe on a disabled cache.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
