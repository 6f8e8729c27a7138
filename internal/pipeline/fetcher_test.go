package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ymiyake/bukkengen/internal/cache"
	"github.com/ymiyake/bukkengen/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "bukkengen-test/0.1",
		MaxBodyBytes: 1_000_000,
	}
}

func testRateLimit() model.RateLimitConfig {
	return model.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "bukkengen-test/0.1" {
			t.Errorf("User-Agent = %q", got)
		}
		_, _ = w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), testRateLimit(), nil, 0)

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "listing") {
		t.Errorf("body = %q", body)
	}
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	// No real sleeping between retries.
	originalSleep := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = originalSleep }()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), testRateLimit(), nil, 0)

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if body != "recovered" {
		t.Errorf("body = %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestFetchDoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), testRateLimit(), nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("404 must not be retried, got %d attempts", got)
	}
}

func TestFetchBodySizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	f := NewFetcher(cfg, testRateLimit(), nil, 0)

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("body length = %d, want 100", len(body))
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("fresh"))
	}))
	defer server.Close()

	pages := cache.NewMemoryCache(time.Minute, time.Minute)
	f := NewFetcher(testHTTPConfig(), testRateLimit(), pages, time.Minute)

	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if body != "fresh" {
			t.Errorf("fetch %d body = %q", i, body)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected a single upstream request, got %d", got)
	}
}

func TestFetchRespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	f := NewFetcher(cfg, testRateLimit(), nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL+"/private/listing"); err == nil {
		t.Error("expected robots.txt to block the fetch")
	}
	if _, err := f.Fetch(context.Background(), server.URL+"/public/listing"); err != nil {
		t.Errorf("allowed path blocked: %v", err)
	}
}

func TestFetchAllAbsorbsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("good page"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), testRateLimit(), nil, 0)

	docs := f.FetchAll(context.Background(), []string{
		server.URL + "/good",
		server.URL + "/bad",
		server.URL + "/good2",
	})

	if len(docs) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(docs))
	}
	if docs[0] != "good page" || docs[2] != "good page" {
		t.Errorf("good sources lost: %v", docs)
	}
	if docs[1] != "" {
		t.Errorf("failed source must contribute an empty document, got %q", docs[1])
	}
}
