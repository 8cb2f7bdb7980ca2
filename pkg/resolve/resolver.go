package resolve

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/maven"
)

// Source fetches a repository-relative path. ok is false when no
// repository could serve it.
type Source interface {
	FetchBytes(ctx context.Context, path string) (data []byte, ok bool)
}

// ManifestSource resolves the manifest of a coordinate.
type ManifestSource interface {
	Resolve(ctx context.Context, c maven.Coordinate) (*maven.Manifest, bool)
}

// Resolver fetches and parses manifests and metadata documents.
type Resolver struct {
	source Source
	logger *log.Logger
}

// NewResolver creates a Resolver reading from source.
func NewResolver(source Source, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{source: source, logger: logger}
}

// Resolve fetches and parses the manifest of c. ok is false when the
// manifest is unavailable or not valid XML; both are logged.
func (r *Resolver) Resolve(ctx context.Context, c maven.Coordinate) (*maven.Manifest, bool) {
	data, ok := r.source.FetchBytes(ctx, c.ManifestPath())
	if !ok {
		r.logger.Warn("manifest unavailable", "coordinate", c)
		return nil, false
	}
	m, err := maven.ParseManifest(data, c)
	if err != nil {
		r.logger.Warn("manifest unreadable", "coordinate", c, "err", err)
		return nil, false
	}
	return m, true
}

// Metadata fetches and parses maven-metadata.xml for c's group and
// artifact.
func (r *Resolver) Metadata(ctx context.Context, c maven.Coordinate) (*maven.Metadata, bool) {
	data, ok := r.source.FetchBytes(ctx, c.MetadataPath())
	if !ok {
		r.logger.Warn("metadata unavailable", "group", c.GroupID, "artifact", c.ArtifactID)
		return nil, false
	}
	md, err := maven.ParseMetadata(data)
	if err != nil {
		r.logger.Warn("metadata unreadable", "group", c.GroupID, "artifact", c.ArtifactID, "err", err)
		return nil, false
	}
	return md, true
}
