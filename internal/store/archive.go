package store

import (
	"context"
	"fmt"
	"time"

	"seekwatch/internal/domain"
)

// Record stores one notified job. Inserting the same job id twice is a
// no-op, so re-runs cannot duplicate history.
func (d *DB) Record(ctx context.Context, job domain.Job) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO notified_jobs(job_id, title, advertiser, location, salary, listing_date, url, keyword, notified_at)
VALUES(?,?,?,?,?,?,?,?,?);`,
		job.ID,
		job.Title,
		job.Advertiser,
		job.Location,
		job.Salary,
		job.ListingDate,
		job.URL,
		job.Keyword,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert notified job: %w", err)
	}
	return nil
}

// Recent returns the latest notified jobs, newest first.
func (d *DB) Recent(ctx context.Context, limit int) ([]domain.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT job_id, title, advertiser, location, salary, listing_date, url, keyword
FROM notified_jobs
ORDER BY notified_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Advertiser, &j.Location, &j.Salary, &j.ListingDate, &j.URL, &j.Keyword); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
