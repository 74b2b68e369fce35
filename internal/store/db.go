package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the notified-jobs archive. The JSON seen-set stays the dedup source
// of truth; the archive only keeps full records around for later browsing.
type DB struct {
	Pool *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	if err := migrate(pool); err != nil {
		_ = pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS notified_jobs (
  job_id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  advertiser TEXT NOT NULL,
  location TEXT NOT NULL,
  salary TEXT NOT NULL,
  listing_date TEXT NOT NULL,
  url TEXT NOT NULL,
  keyword TEXT NOT NULL,
  notified_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notified_jobs_notified_at ON notified_jobs(notified_at DESC);
`)
	return err
}
