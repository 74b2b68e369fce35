package seek

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"seekwatch/internal/domain"
	"seekwatch/internal/scrape/util"
)

// ErrBlocked is returned when every attempt came back 403/429 or failed at
// the network level. Callers treat it as "no results this time".
var ErrBlocked = errors.New("seek blocked or rate-limited")

const (
	maxBodyBytes  = 8 << 20
	debugMaxBytes = 64 << 10
)

type ClientConfig struct {
	Origin     string
	ProxyURL   string
	Timeout    time.Duration // per attempt; defaults to 30s
	MaxRetries int           // attempts per keyword; defaults to 3
	RetryDelay time.Duration // base backoff, scaled by attempt; defaults to 10s
	DebugPath  string        // last fetched body, truncated; empty disables
}

// Client fetches search-results pages with a desktop-browser fingerprint and
// hands the body to the extractor.
type Client struct {
	origin     string
	hc         *http.Client
	extractor  *Extractor
	pacer      *util.RequestPacer
	maxRetries int
	retryDelay time.Duration
	debugPath  string
}

func NewClient(cfg ClientConfig, pacer *util.RequestPacer) (*Client, error) {
	transport := &http.Transport{}
	if cfg.ProxyURL != "" {
		pu, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(pu)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 10 * time.Second
	}

	return &Client{
		origin:     strings.TrimRight(strings.TrimSpace(cfg.Origin), "/"),
		hc:         &http.Client{Transport: transport, Timeout: timeout},
		extractor:  NewExtractor(cfg.Origin),
		pacer:      pacer,
		maxRetries: retries,
		retryDelay: delay,
		debugPath:  cfg.DebugPath,
	}, nil
}

// Search runs one keyword search. 403/429 and network errors are retried
// with escalating delay; any other non-200 status aborts immediately.
func (c *Client) Search(ctx context.Context, keyword, location string) ([]domain.Job, error) {
	target := c.searchURL(keyword, location)
	log.Printf("[seek] requesting %s", target)

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, status, err := c.get(ctx, target)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[seek] network error: %v (attempt %d/%d)", err, attempt, c.maxRetries)
			if werr := c.backoff(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}

		switch status {
		case http.StatusOK:
			jobs := c.extractor.Extract(body)
			for i := range jobs {
				jobs[i].Keyword = keyword
			}
			return jobs, nil
		case http.StatusForbidden, http.StatusTooManyRequests:
			log.Printf("[seek] got %d (attempt %d/%d)", status, attempt, c.maxRetries)
			if werr := c.backoff(ctx, attempt); werr != nil {
				return nil, werr
			}
		default:
			return nil, fmt.Errorf("unexpected http status %d", status)
		}
	}
	return nil, ErrBlocked
}

func (c *Client) searchURL(keyword, location string) string {
	return fmt.Sprintf("%s/%s-jobs/in-%s", c.origin, util.Slug(keyword), util.Slug(location))
}

func (c *Client) get(ctx context.Context, target string) (string, int, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx, target); err != nil {
			return "", 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, err
	}
	browserHeaders(req)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", res.StatusCode, err
	}
	c.writeDebug(b)
	return string(b), res.StatusCode, nil
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.retryDelay * time.Duration(attempt)):
		return nil
	}
}

// writeDebug keeps the last fetched body around for offline inspection.
// Never read back by the engine.
func (c *Client) writeDebug(body []byte) {
	if c.debugPath == "" || len(body) == 0 {
		return
	}
	if len(body) > debugMaxBytes {
		body = body[:debugMaxBytes]
	}
	if err := os.WriteFile(c.debugPath, body, 0o644); err != nil {
		log.Printf("[seek] debug page write failed: %v", err)
	}
}

// browserHeaders sets a desktop Chrome fingerprint; bare default Go headers
// get bot-walled immediately.
func browserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
