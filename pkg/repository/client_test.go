package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mvnfetch/pkg/observability"
)

// fakeRepo serves fixed files and counts every request.
type fakeRepo struct {
	*httptest.Server
	hits  atomic.Int32
	files map[string]string
	fail  int // status returned for every request when non-zero
}

func newFakeRepo(t *testing.T, files map[string]string, fail int) *fakeRepo {
	t.Helper()
	f := &fakeRepo{files: files, fail: fail}
	r := chi.NewRouter()
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		f.hits.Add(1)
		if f.fail != 0 {
			w.WriteHeader(f.fail)
			return
		}
		body, ok := f.files[chi.URLParam(req, "*")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		io.WriteString(w, body)
	})
	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

func testClient(t *testing.T, urls []string, opts ...Option) *Client {
	t.Helper()
	repos, err := NewSet(urls, nil)
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return NewClient(repos, opts...)
}

func TestClient_FetchText_FirstSuccessWins(t *testing.T) {
	files := map[string]string{"g/a/1/a-1.pom": "<project/>"}
	broken := newFakeRepo(t, nil, http.StatusInternalServerError)
	good1 := newFakeRepo(t, files, 0)
	good2 := newFakeRepo(t, files, 0)

	c := testClient(t, []string{broken.URL, good1.URL, good2.URL})
	text, ok := c.FetchText(context.Background(), "g/a/1/a-1.pom")
	if !ok {
		t.Fatal("FetchText() should succeed via a working repository")
	}
	if text != "<project/>" {
		t.Errorf("FetchText() = %q", text)
	}
	if got := good1.hits.Load() + good2.hits.Load(); got != 1 {
		t.Errorf("successful repositories hit %d times, want exactly 1", got)
	}
}

func TestClient_FetchText_FallbackAfterFailure(t *testing.T) {
	failing := newFakeRepo(t, nil, http.StatusServiceUnavailable)
	good := newFakeRepo(t, map[string]string{"x.xml": "ok"}, 0)

	c := testClient(t, []string{failing.URL, good.URL})
	text, ok := c.FetchText(context.Background(), "/x.xml")
	if !ok || text != "ok" {
		t.Fatalf("FetchText() = %q, %v", text, ok)
	}
	if good.hits.Load() != 1 {
		t.Errorf("good repository hits = %d, want 1", good.hits.Load())
	}
}

func TestClient_FetchText_Exhausted(t *testing.T) {
	a := newFakeRepo(t, nil, 0)
	b := newFakeRepo(t, nil, http.StatusForbidden)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	c := testClient(t, []string{a.URL, b.URL, closedURL})
	if _, ok := c.FetchText(context.Background(), "missing.pom"); ok {
		t.Error("FetchText() should report absence when every repository fails")
	}
	if a.hits.Load() != 1 || b.hits.Load() != 1 {
		t.Errorf("hits = %d/%d, want every repository tried once", a.hits.Load(), b.hits.Load())
	}
}

func TestClient_Retries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, "finally")
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, WithRetries(2, time.Millisecond))
	text, ok := c.FetchText(context.Background(), "a")
	if !ok || text != "finally" {
		t.Fatalf("FetchText() = %q, %v", text, ok)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	repo := newFakeRepo(t, nil, 0)
	c := testClient(t, []string{repo.URL}, WithRetries(3, time.Millisecond))
	if _, ok := c.FetchText(context.Background(), "nope"); ok {
		t.Fatal("FetchText() should fail")
	}
	if repo.hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", repo.hits.Load())
	}
}

func TestClient_FetchFile(t *testing.T) {
	repo := newFakeRepo(t, map[string]string{"g/a/1/a-1.jar": "binary"}, 0)
	c := testClient(t, []string{repo.URL})
	dir := t.TempDir()
	dest := filepath.Join(dir, "a-1.jar")

	if !c.FetchFile(context.Background(), "g/a/1/a-1.jar", dest) {
		t.Fatal("FetchFile() failed")
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "binary" {
		t.Errorf("dest content = %q, %v", data, err)
	}

	if c.FetchFile(context.Background(), "g/a/2/a-2.jar", filepath.Join(dir, "a-2.jar")) {
		t.Error("FetchFile() should fail for a missing artifact")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the completed download", len(entries))
	}
}

func TestClient_BasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "deploy" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, "secret pom")
	}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	creds := Credentials{req.URL.Hostname(): {Username: "deploy", Password: "s3cret"}}

	c := testClient(t, []string{srv.URL}, WithCredentials(creds))
	if text, ok := c.FetchText(context.Background(), "p.pom"); !ok || text != "secret pom" {
		t.Errorf("FetchText() = %q, %v", text, ok)
	}

	anon := testClient(t, []string{srv.URL})
	if _, ok := anon.FetchText(context.Background(), "p.pom"); ok {
		t.Error("request without credentials should fail")
	}
}

func TestClient_Hooks(t *testing.T) {
	missing := newFakeRepo(t, nil, 0)
	good := newFakeRepo(t, map[string]string{"f": "12345"}, 0)
	stats := &observability.Counter{}

	// Two repositories, so the 404 may or may not be seen first.
	c := testClient(t, []string{missing.URL, good.URL}, WithHooks(stats))
	if _, ok := c.FetchText(context.Background(), "f"); !ok {
		t.Fatal("FetchText() failed")
	}

	s := stats.Snapshot()
	if s.Successes != 1 || s.Bytes != 5 {
		t.Errorf("stats = %+v, want 1 success of 5 bytes", s)
	}
	if s.Requests != int(missing.hits.Load()+good.hits.Load()) {
		t.Errorf("Requests = %d, server hits = %d", s.Requests, missing.hits.Load()+good.hits.Load())
	}
}

func TestClient_CancelledContext(t *testing.T) {
	repo := newFakeRepo(t, map[string]string{"f": "x"}, 0)
	c := testClient(t, []string{repo.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := c.FetchText(ctx, "f"); ok {
		t.Error("FetchText() should not succeed with a cancelled context")
	}
	if repo.hits.Load() != 0 {
		t.Errorf("hits = %d, want 0", repo.hits.Load())
	}
}
