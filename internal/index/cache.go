package index

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// cacheSchema holds derived session metadata keyed by project and
// session id, stamped with the source file's mtime and size so
// stale rows are recomputed after the transcript grows.
const cacheSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    project       TEXT NOT NULL,
    session_id    TEXT NOT NULL,
    mtime         INTEGER NOT NULL,
    size          INTEGER NOT NULL,
    path          TEXT NOT NULL,
    summary       TEXT NOT NULL DEFAULT '',
    first_prompt  TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (project, session_id)
);
`

// Cache is a sqlite-backed metadata cache shared by all projects.
type Cache struct {
	db *sql.DB
}

// OpenCache creates or opens the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	params := url.Values{}
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "5000")
	db, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached metadata for a session when the stored
// mtime and size still match the transcript file.
func (c *Cache) Get(projectDir, sessionID string, mtime, size int64) (Meta, bool) {
	var m Meta
	var gotMtime, gotSize int64
	err := c.db.QueryRow(`
		SELECT mtime, size, path, summary, first_prompt, message_count
		FROM sessions WHERE project = ? AND session_id = ?`,
		projectDir, sessionID,
	).Scan(&gotMtime, &gotSize, &m.Path, &m.Summary, &m.FirstPrompt, &m.MessageCount)
	if err != nil || gotMtime != mtime || gotSize != size {
		return Meta{}, false
	}
	m.SessionID = sessionID
	return m, true
}

// Put upserts the metadata row for a session.
func (c *Cache) Put(projectDir string, m Meta, mtime, size int64) {
	_, err := c.db.Exec(`
		INSERT INTO sessions
			(project, session_id, mtime, size, path, summary, first_prompt, message_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project, session_id) DO UPDATE SET
			mtime = excluded.mtime,
			size = excluded.size,
			path = excluded.path,
			summary = excluded.summary,
			first_prompt = excluded.first_prompt,
			message_count = excluded.message_count`,
		projectDir, m.SessionID, mtime, size,
		m.Path, m.Summary, m.FirstPrompt, m.MessageCount,
	)
	_ = err // cache writes are best-effort
}
