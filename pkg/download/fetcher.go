package download

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/observability"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// FileSource streams a repository-relative path into dest. ok is false
// when no repository served it; dest is then left untouched.
type FileSource interface {
	FetchFile(ctx context.Context, path, dest string) (ok bool)
}

// Options configures a [Fetcher].
type Options struct {
	Logger *log.Logger
	Hooks  observability.DownloadHooks
}

// Fetcher downloads the artifacts of a tree into an output directory.
type Fetcher struct {
	source FileSource
	dir    string
	local  LocalSet
	logger *log.Logger
	hooks  observability.DownloadHooks
}

// NewFetcher creates a Fetcher writing below dir. Coordinates in local are
// skipped. local is not updated as files are written.
func NewFetcher(source FileSource, dir string, local LocalSet, opts Options) *Fetcher {
	if local == nil {
		local = LocalSet{}
	}
	f := &Fetcher{
		source: source,
		dir:    dir,
		local:  local,
		logger: opts.Logger,
		hooks:  opts.Hooks,
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	if f.hooks == nil {
		f.hooks = observability.NoopDownloadHooks{}
	}
	return f
}

// Destination returns the file path an artifact of c is written to.
func (f *Fetcher) Destination(c maven.Coordinate) string {
	return filepath.Join(f.dir, c.GroupID, c.ArtifactID, c.FileName(c.PackagingOrDefault()))
}

// Download fetches every node of the tree rooted at root in pre-order.
// Failures are recorded in the report; the walk always continues into
// children. A cancelled context stops the walk and is reported through
// Report.Err.
func (f *Fetcher) Download(ctx context.Context, root *resolve.Node) *Report {
	r := &Report{
		RunID:     uuid.New(),
		OutputDir: f.dir,
		Started:   time.Now(),
	}
	if root != nil {
		r.Root = root.Coordinate.Key()
		root.Walk(func(n *resolve.Node, _ int) bool {
			if r.err != nil {
				return false
			}
			if err := ctx.Err(); err != nil {
				r.err = err
				return false
			}
			f.download(ctx, n.Coordinate, r)
			return true
		})
	}
	r.Duration = time.Since(r.Started)
	return r
}

func (f *Fetcher) download(ctx context.Context, c maven.Coordinate, r *Report) {
	if f.local.Contains(c) {
		f.logger.Info("local cache hit", "coordinate", c)
		r.Skipped = append(r.Skipped, c.Key())
		f.hooks.OnSkipped(ctx, c.Key())
		return
	}

	dest := f.Destination(c)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		f.logger.Error("cannot create directory", "path", filepath.Dir(dest), "err", err)
		r.Failed = append(r.Failed, c.Key())
		f.hooks.OnFailed(ctx, c.Key())
		return
	}

	if !f.source.FetchFile(ctx, c.ArtifactPath(c.PackagingOrDefault()), dest) {
		f.logger.Warn("artifact unavailable", "coordinate", c, "packaging", c.PackagingOrDefault())
		r.Failed = append(r.Failed, c.Key())
		f.hooks.OnFailed(ctx, c.Key())
		return
	}

	f.logger.Info("downloaded", "coordinate", c, "path", dest)
	r.Downloaded = append(r.Downloaded, Entry{Coordinate: c.Key(), Path: dest})
	f.hooks.OnDownloaded(ctx, c.Key(), dest)
}

// Entry is one downloaded artifact.
type Entry struct {
	Coordinate string `json:"coordinate"`
	Path       string `json:"path"`
}

// Report summarizes one download run. It is JSON-serializable.
type Report struct {
	RunID      uuid.UUID     `json:"run_id"`
	Root       string        `json:"root"`
	OutputDir  string        `json:"output_dir"`
	Downloaded []Entry       `json:"downloaded"`
	Skipped    []string      `json:"skipped"`
	Failed     []string      `json:"failed"`
	Started    time.Time     `json:"started"`
	Duration   time.Duration `json:"duration_ns"`

	err error
}

// Err returns the context error that stopped the walk, if any.
func (r *Report) Err() error { return r.err }

// DownloadedCoordinates returns the coordinates of Downloaded.
func (r *Report) DownloadedCoordinates() []string {
	return lo.Map(r.Downloaded, func(e Entry, _ int) string { return e.Coordinate })
}

// Unique returns the number of distinct coordinates the run touched.
func (r *Report) Unique() int {
	all := append(r.DownloadedCoordinates(), r.Skipped...)
	all = append(all, r.Failed...)
	return len(lo.Uniq(all))
}

// OK reports whether every artifact was downloaded or already present.
func (r *Report) OK() bool { return len(r.Failed) == 0 && r.err == nil }
