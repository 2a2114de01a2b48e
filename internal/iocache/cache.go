// Package iocache keeps downloaded pages in a local SQLite file.
package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/vgarchive/vgdb/internal/iofetch"
	_ "modernc.org/sqlite"
)

const ddl = `
CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Cache stores page bodies by URL. A cache file is used by one vgdb
// process at a time.
type Cache struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open opens or creates the cache file at path. It fails when another
// process holds the cache.
func Open(path string) (*Cache, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, OpenError(path, err)
	}
	if !ok {
		return nil, LockedError(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, OpenError(path, err)
	}
	// one writer at a time, pages are imported concurrently
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err = db.Exec(p); err != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, OpenError(path, fmt.Errorf("pragma %q: %w", p, err))
		}
	}
	if _, err = db.Exec(ddl); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, OpenError(path, err)
	}
	return &Cache{db: db, lock: lock, path: path}, nil
}

// Close closes the cache file and releases it for other processes.
func (c *Cache) Close() error {
	err := c.db.Close()
	if uerr := c.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

// Get returns a cached body. The bool is false when url is not cached.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT body FROM pages WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, QueryError(url, err)
	}
	return body, true, nil
}

// Put stores or replaces the body of url.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO pages (url, body, fetched_at) VALUES (?, ?, ?)
ON CONFLICT (url) DO UPDATE
  SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, time.Now().Unix())
	if err != nil {
		return QueryError(url, err)
	}
	return nil
}

// Len returns the number of cached pages.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var res int
	err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM pages`).Scan(&res)
	if err != nil {
		return 0, QueryError(c.path, err)
	}
	return res, nil
}

type cachedFetcher struct {
	cache *Cache
	next  iofetch.Fetcher
}

// NewFetcher returns a Fetcher that serves pages from the cache and
// downloads and stores the missing ones with next.
func NewFetcher(c *Cache, next iofetch.Fetcher) iofetch.Fetcher {
	return &cachedFetcher{cache: c, next: next}
}

func (f *cachedFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	body, ok, err := f.cache.Get(ctx, url)
	if err != nil {
		slog.Warn("Page cache lookup failed", "url", url, "error", err)
	}
	if ok {
		slog.Debug("Page served from cache", "url", url)
		return body, nil
	}

	body, err = f.next.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if err = f.cache.Put(ctx, url, body); err != nil {
		slog.Warn("Cannot cache page", "url", url, "error", err)
	}
	return body, nil
}
