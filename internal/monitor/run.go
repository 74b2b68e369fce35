package monitor

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"seekwatch/internal/config"
	"seekwatch/internal/domain"
	"seekwatch/internal/state"
)

// Fetcher runs one keyword search against the job site.
type Fetcher interface {
	Search(ctx context.Context, keyword, location string) ([]domain.Job, error)
}

// Notifier delivers one job to the outbound channel.
type Notifier interface {
	Send(ctx context.Context, job domain.Job) error
}

// Archiver records notified jobs for later browsing.
type Archiver interface {
	Record(ctx context.Context, job domain.Job) error
}

type Runner struct {
	Cfg      config.Config
	Fetcher  Fetcher
	Notifier Notifier
	Archive  Archiver             // optional
	Sleep    func(time.Duration) // nil means time.Sleep
}

// RunOnce executes a full monitoring cycle: search every keyword strictly in
// order, reconcile against persisted state, notify the new listings, then
// save state once. Keywords are never fetched concurrently; a steady
// parallel burst toward the same site is exactly the fingerprint the
// randomized pacing exists to avoid.
func (r *Runner) RunOnce(ctx context.Context) error {
	statePath := r.Cfg.StatePath()
	seen := state.Load(statePath)
	log.Printf("[monitor] loaded %d seen job ids", seen.Len())

	keywords := r.Cfg.Search.Keywords
	var found []domain.Job
	for i, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		log.Printf("[monitor] searching %q", kw)
		jobs, err := r.Fetcher.Search(ctx, kw, r.Cfg.Search.Location)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// one keyword failing never aborts the rest of the run
			log.Printf("[monitor] search %q failed: %v", kw, err)
		}
		found = append(found, jobs...)

		if i < len(keywords)-1 {
			r.pause()
		}
	}

	toNotify, counts := Reconcile(found, seen, r.Cfg.Search.Location, r.Cfg.Search.Exclude)

	for _, j := range toNotify {
		log.Printf("[monitor] new job %s - %s", j.ID, j.Title)
		if err := r.Notifier.Send(ctx, j); err != nil {
			// at-most-one-attempt: the id stays in the seen set either way
			log.Printf("[notify] send failed for %s: %v", j.ID, err)
		}
		if r.Archive != nil {
			if err := r.Archive.Record(ctx, j); err != nil {
				log.Printf("[archive] record failed for %s: %v", j.ID, err)
			}
		}
	}

	if counts.New > 0 {
		if err := state.Save(statePath, seen); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		log.Printf("[monitor] state updated, %d new jobs saved", counts.New)
	} else {
		log.Printf("[monitor] no new jobs found")
	}

	log.Printf("[monitor] ok found=%d unique=%d seen=%d loc_reject=%d excl_reject=%d notified=%d",
		counts.Found, counts.Unique, counts.AlreadySeen,
		counts.RejectedLocation, counts.RejectedExcluded, counts.New)
	return nil
}

// pause sleeps a randomized interval between keyword searches so the request
// cadence is not a fixed fingerprint.
func (r *Runner) pause() {
	minD, maxD := r.Cfg.PauseBounds()
	d := minD
	if maxD > minD {
		d += time.Duration(rand.Int64N(int64(maxD - minD)))
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}
