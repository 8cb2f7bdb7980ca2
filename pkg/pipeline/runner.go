package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/download"
	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/observability"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// Client is the repository access a Runner needs. *repository.Client
// satisfies it.
type Client interface {
	resolve.Source
	download.FileSource
}

// Runner carries the session state shared by the pipeline stages.
type Runner struct {
	Client   Client
	Resolver *resolve.Resolver
	Logger   *log.Logger
	Hooks    observability.DownloadHooks

	// MaxDepth limits tree expansion; 0 means unlimited.
	MaxDepth int
	// LockWait bounds the wait for the output directory lock.
	LockWait time.Duration
}

// NewRunner creates a runner around client.
// If logger is nil, log.Default() is used.
// If hooks is nil, download events are discarded.
func NewRunner(client Client, logger *log.Logger, hooks observability.DownloadHooks) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if hooks == nil {
		hooks = observability.NoopDownloadHooks{}
	}
	return &Runner{
		Client:   client,
		Resolver: resolve.NewResolver(client, logger),
		Logger:   logger,
		Hooks:    hooks,
		LockWait: DefaultLockWait,
	}
}

// Execute resolves opts.Coordinate and downloads its tree.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	root, stats, err := r.ResolveWithStats(ctx, opts.Coordinate, opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Root = root
	result.Stats.Resolve = stats
	result.Stats.NodeCount = root.Count()
	result.Stats.ResolveTime = time.Since(resolveStart)

	r.Logger.Info("resolved dependencies",
		"root", root.Coordinate,
		"nodes", result.Stats.NodeCount,
		"manifests", stats.Fetched,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Download
	downloadStart := time.Now()
	report, err := r.Fetch(ctx, root, opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	result.Report = report
	result.Stats.DownloadTime = time.Since(downloadStart)

	r.Logger.Info("downloaded artifacts",
		"downloaded", len(report.Downloaded),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
		"duration", result.Stats.DownloadTime)

	return result, nil
}

// Resolve parses desc, completes its version with sel when needed and
// builds the dependency tree.
func (r *Runner) Resolve(ctx context.Context, desc string, sel resolve.VersionSelector) (*resolve.Node, error) {
	root, _, err := r.ResolveWithStats(ctx, desc, sel)
	return root, err
}

// ResolveWithStats is Resolve that also returns the build statistics.
func (r *Runner) ResolveWithStats(ctx context.Context, desc string, sel resolve.VersionSelector) (*resolve.Node, resolve.Stats, error) {
	c, err := maven.ParseCoordinate(desc)
	if err != nil {
		return nil, resolve.Stats{}, err
	}
	c, err = r.Resolver.CompleteVersion(ctx, c, sel)
	if err != nil {
		return nil, resolve.Stats{}, err
	}

	b := resolve.NewBuilder(r.Resolver, resolve.Options{MaxDepth: r.MaxDepth, Logger: r.Logger})
	root, err := b.Build(ctx, c)
	if err != nil {
		return nil, resolve.Stats{}, err
	}
	return root, b.Stats(), nil
}

// Versions fetches the metadata document for desc's group and artifact.
// A version in desc is ignored.
func (r *Runner) Versions(ctx context.Context, desc string) (*maven.Metadata, error) {
	c, err := maven.ParseCoordinate(desc)
	if err != nil {
		return nil, err
	}
	md, ok := r.Resolver.Metadata(ctx, c)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no repository lists versions of %s:%s", c.GroupID, c.ArtifactID)
	}
	return md, nil
}

// Fetch downloads the tree into dir while holding dir's lock. The
// inventory is scanned once, after the lock is taken.
func (r *Runner) Fetch(ctx context.Context, root *resolve.Node, dir string) (*download.Report, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}

	var report *download.Report
	err := download.WithLock(ctx, dir, r.LockWait, r.Logger, func() error {
		local, err := download.Scan(dir)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "scan %s", dir)
		}
		r.Logger.Debug("scanned output directory", "dir", dir, "artifacts", len(local))

		f := download.NewFetcher(r.Client, dir, local, download.Options{Logger: r.Logger, Hooks: r.Hooks})
		report = f.Download(ctx, root)
		return report.Err()
	})
	if err != nil {
		return report, err
	}
	return report, nil
}
