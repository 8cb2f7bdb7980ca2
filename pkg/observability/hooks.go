// Package observability provides hooks for request and download events.
//
// Hooks are plain interfaces with no-op defaults. They are handed to the
// components that emit events (the repository client, the artifact fetcher)
// when those are constructed, so there is no global registry: two runs in
// the same process can observe different hooks.
//
// # Usage
//
//	stats := &observability.Counter{}
//	client := repository.NewClient(repos, repository.WithHooks(stats))
//	// ... run ...
//	fmt.Println(stats.Snapshot().Requests)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from repository requests.
type HTTPHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, method, url string)

	// OnResponse records a response. Bytes is the body size consumed, or
	// -1 when the body was not read.
	OnResponse(ctx context.Context, method, url string, statusCode int, bytes int64, duration time.Duration)

	// OnError records a transport failure (connection refused, timeout).
	OnError(ctx context.Context, method, url string, err error)
}

// =============================================================================
// Download Hooks
// =============================================================================

// DownloadHooks receives per-artifact events from the fetcher.
type DownloadHooks interface {
	OnDownloaded(ctx context.Context, coordinate, path string)
	OnSkipped(ctx context.Context, coordinate string)
	OnFailed(ctx context.Context, coordinate string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, int64, time.Duration) {}

func (NoopHTTPHooks) OnError(context.Context, string, string, error) {}

// NoopDownloadHooks is a no-op implementation of DownloadHooks.
type NoopDownloadHooks struct{}

func (NoopDownloadHooks) OnDownloaded(context.Context, string, string) {}

func (NoopDownloadHooks) OnSkipped(context.Context, string) {}

func (NoopDownloadHooks) OnFailed(context.Context, string) {}

// =============================================================================
// Counter
// =============================================================================

// Counter implements HTTPHooks and DownloadHooks by tallying events.
// The zero value is ready to use and safe for concurrent use.
type Counter struct {
	mu    sync.Mutex
	stats Stats
}

// Stats is a point-in-time copy of a Counter.
type Stats struct {
	Requests   int           `json:"requests"`   // requests issued
	Successes  int           `json:"successes"`  // 2xx responses
	Failures   int           `json:"failures"`   // non-2xx responses and transport errors
	Bytes      int64         `json:"bytes"`      // response bytes consumed
	Elapsed    time.Duration `json:"elapsed_ns"` // summed request time
	Downloaded int           `json:"downloaded"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
}

func (c *Counter) OnRequest(context.Context, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Requests++
}

func (c *Counter) OnResponse(_ context.Context, _, _ string, status int, bytes int64, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if status >= 200 && status < 300 {
		c.stats.Successes++
	} else {
		c.stats.Failures++
	}
	if bytes > 0 {
		c.stats.Bytes += bytes
	}
	c.stats.Elapsed += d
}

func (c *Counter) OnError(context.Context, string, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Failures++
}

func (c *Counter) OnDownloaded(context.Context, string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Downloaded++
}

func (c *Counter) OnSkipped(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Skipped++
}

func (c *Counter) OnFailed(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Failed++
}

// Snapshot returns the current tallies.
func (c *Counter) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

var (
	_ HTTPHooks     = (*Counter)(nil)
	_ DownloadHooks = (*Counter)(nil)
	_ HTTPHooks     = NoopHTTPHooks{}
	_ DownloadHooks = NoopDownloadHooks{}
)
