package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/observability"
)

// DefaultTimeout bounds a single request, body transfer included.
const DefaultTimeout = 5 * time.Minute

// Client fetches repository-relative paths with fallback across a [Set].
// One *http.Client is shared by every request.
type Client struct {
	http      *http.Client
	repos     Set
	logger    *log.Logger
	hooks     observability.HTTPHooks
	creds     Credentials
	userAgent string
	attempts  int
	delay     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for per-repository diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks reports request events to h.
func WithHooks(h observability.HTTPHooks) Option {
	return func(c *Client) {
		if h != nil {
			c.hooks = h
		}
	}
}

// WithCredentials attaches basic auth to requests for matching hosts.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRetries retries each repository up to n extra times on transient
// failures, starting at delay and doubling.
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(n, 0) + 1
		c.delay = delay
	}
}

// NewClient creates a Client for repos.
func NewClient(repos Set, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		repos:     repos,
		logger:    log.Default(),
		hooks:     observability.NoopHTTPHooks{},
		userAgent: "mvnfetch",
		attempts:  1,
		delay:     time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repositories returns the configured base URLs.
func (c *Client) Repositories() []string { return c.repos.Bases() }

// FetchBytes returns the body of the first successful response for path.
// ok is false when no repository served it.
func (c *Client) FetchBytes(ctx context.Context, path string) (data []byte, ok bool) {
	var buf bytes.Buffer
	_, ok = c.fetch(ctx, path, func(r io.Reader) error {
		buf.Reset()
		_, err := io.Copy(&buf, r)
		return err
	})
	if !ok {
		return nil, false
	}
	return buf.Bytes(), true
}

// FetchText is FetchBytes returning a string.
func (c *Client) FetchText(ctx context.Context, path string) (string, bool) {
	data, ok := c.FetchBytes(ctx, path)
	return string(data), ok
}

// FetchFile streams the first successful response for path into dest.
// The body is written to a temporary file next to dest and renamed into
// place, so dest is only replaced by a complete transfer. The directory of
// dest must exist.
func (c *Client) FetchFile(ctx context.Context, path, dest string) bool {
	_, ok := c.fetch(ctx, path, func(r io.Reader) error {
		return writeAtomic(dest, r)
	})
	return ok
}

// fetch tries each repository in turn and returns the base that served path.
func (c *Client) fetch(ctx context.Context, path string, consume func(io.Reader) error) (string, bool) {
	path = strings.TrimPrefix(path, "/")
	for _, base := range c.repos.bases {
		if ctx.Err() != nil {
			return "", false
		}
		url := base + path
		err := retry(ctx, c.attempts, c.delay, func() error {
			return c.get(ctx, url, consume)
		})
		if err == nil {
			return base, true
		}
		if errors.Is(err, errors.ErrCodeNotFound) {
			c.logger.Debug("not found", "url", url)
		} else {
			c.logger.Warn("fetch failed", "url", url, "err", err)
		}
	}
	return "", false
}

func (c *Client) get(ctx context.Context, url string, consume func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	if cred, ok := c.creds[req.URL.Hostname()]; ok {
		req.SetBasicAuth(cred.Username, cred.Password)
	}

	c.hooks.OnRequest(ctx, http.MethodGet, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.hooks.OnError(ctx, http.MethodGet, url, err)
		return retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.hooks.OnResponse(ctx, http.MethodGet, url, resp.StatusCode, -1, time.Since(start))
		return checkStatus(resp.StatusCode)
	}

	cr := &countingReader{r: resp.Body}
	err = consume(cr)
	c.hooks.OnResponse(ctx, http.MethodGet, url, resp.StatusCode, cr.n, time.Since(start))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	c.logger.Debug("fetched", "url", url, "bytes", cr.n)
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "status %d", code)
	case code == http.StatusTooManyRequests || code >= 500:
		return retryable(errors.New(errors.ErrCodeNetwork, "status %d", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func writeAtomic(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
