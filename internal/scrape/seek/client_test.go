package seek

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const resultsPage = `<html><head>
<script>window.SEEK_REDUX_DATA = {"results":{"jobs":[{"id":"42","title":"Go Developer","location":"Sydney NSW"}]}};</script>
</head><body></body></html>`

func newTestClient(t *testing.T, serverURL string, maxRetries int) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		Origin:     serverURL,
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSearch_RecoversAfterRateLimiting(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5)
	jobs, err := c.Search(context.Background(), "Go Developer", "Sydney")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits != 4 {
		t.Fatalf("expected 4 attempts, got %d", hits)
	}
	if len(jobs) != 1 || jobs[0].ID != "42" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if jobs[0].Keyword != "Go Developer" {
		t.Fatalf("keyword attribution missing: %+v", jobs[0])
	}
}

func TestSearch_ExhaustedRetriesYieldsBlocked(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	jobs, err := c.Search(context.Background(), "Go", "Sydney")
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if hits != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestSearch_UnexpectedStatusAbortsImmediately(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Search(context.Background(), "Go", "Sydney")
	if err == nil {
		t.Fatal("expected error for unexpected status")
	}
	if hits != 1 {
		t.Fatalf("expected a single attempt, got %d", hits)
	}
}

func TestSearch_URLBuildingAndHeaders(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	if _, err := c.Search(context.Background(), "  Python Developer ", "All Australia"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/Python-Developer-jobs/in-All-Australia" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Fatalf("expected a browser user agent, got %q", gotUA)
	}
}

func TestSearch_WritesDebugArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	debugPath := filepath.Join(t.TempDir(), "last_page.html")
	c, err := NewClient(ClientConfig{
		Origin:     srv.URL,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		DebugPath:  debugPath,
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Search(context.Background(), "Go", "Sydney"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(debugPath)
	if err != nil {
		t.Fatalf("debug artifact not written: %v", err)
	}
	if string(b) != resultsPage {
		t.Fatalf("debug artifact does not match fetched body")
	}
}

func TestNewClient_RejectsBadProxyURL(t *testing.T) {
	_, err := NewClient(ClientConfig{Origin: "https://example.com", ProxyURL: "://bad"}, nil)
	if err == nil {
		t.Fatal("expected error for malformed proxy url")
	}
}
