package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ymiyake/bukkengen/internal/cache"
	"github.com/ymiyake/bukkengen/internal/model"
	"github.com/ymiyake/bukkengen/internal/util"
	"github.com/ymiyake/bukkengen/internal/worker"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// Fetcher retrieves listing pages. Each fetch is bounded by the configured
// timeout; a failed or disallowed fetch yields no document rather than an
// error at the request level.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pages      cache.Cache
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher from configuration. pages may be nil to
// disable caching.
func NewFetcher(cfg model.HTTPConfig, limit model.RateLimitConfig, pages cache.Cache, cacheTTL time.Duration) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(limit.RequestsPerSecond, limit.BurstSize),
		pages:     pages,
		cacheTTL:  cacheTTL,
	}
}

// FetchAll retrieves every source concurrently. The result slice is indexed
// like urls; a source that failed for any reason holds the empty string.
// Partial failure is absorbed here, per source.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []string {
	documents := make([]string, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			doc, err := f.Fetch(ctx, u)
			if err != nil {
				return // this source contributes no facts
			}
			documents[idx] = doc
		}(i, url)
	}

	wg.Wait()
	return documents
}

// Fetch retrieves one listing page, honoring the cache, robots.txt, and the
// per-domain rate limit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.PageKey(rawURL)
	if f.pages != nil {
		if data, ok := f.pages.Get(key); ok {
			return string(data), nil
		}
	}

	if f.robots != nil {
		allowed, crawlDelay, _ := f.robots.CanFetch(ctx, rawURL)
		if !allowed {
			return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		if crawlDelay > 0 {
			fetchSleepFunc(crawlDelay)
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	body, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if f.pages != nil {
		_ = f.pages.Set(key, []byte(body), f.cacheTTL)
	}
	return body, nil
}

// fetchWithRetry retries transient failures with exponential backoff.
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		body, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return "", err
		}
		if attempt < fetchMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			fetchSleepFunc(backoff)
		}
	}
	return "", lastErr
}

// fetchOnce performs a single GET with the body size limit.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// isRetryableFetchError matches transient statuses and network failures.
func isRetryableFetchError(err error) bool {
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "unexpected status: 5") || strings.Contains(s, "unexpected status: 429") {
		return true
	}
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
