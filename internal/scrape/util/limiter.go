package util

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RequestPacer enforces a minimum interval between outbound requests to the
// same host. Search fetches all land on one origin, but a configured proxy
// or a moved redirect target must not share its budget, so each host keeps
// its own clock.
type RequestPacer struct {
	mu     sync.Mutex
	byHost map[string]*rate.Limiter
	limit  rate.Limit
}

// NewRequestPacer spaces requests at least minInterval apart per host. A
// zero or negative interval disables pacing.
func NewRequestPacer(minInterval time.Duration) *RequestPacer {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &RequestPacer{
		byHost: make(map[string]*rate.Limiter),
		limit:  limit,
	}
}

// Wait blocks until the host behind rawURL has budget for one request, or
// the context ends. Unparseable URLs are paced under the raw string so a
// bad origin still cannot hammer anything.
func (p *RequestPacer) Wait(ctx context.Context, rawURL string) error {
	key := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		key = strings.ToLower(u.Host)
	}

	p.mu.Lock()
	lim, ok := p.byHost[key]
	if !ok {
		// burst 1: the pacing exists to forbid bursts
		lim = rate.NewLimiter(p.limit, 1)
		p.byHost[key] = lim
	}
	p.mu.Unlock()

	return lim.Wait(ctx)
}
