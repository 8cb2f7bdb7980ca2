package resolve

import (
	"context"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
)

// VersionSelector picks a version from a metadata document.
type VersionSelector interface {
	SelectVersion(ctx context.Context, md *maven.Metadata) (string, error)
}

// SelectorFunc adapts a function to [VersionSelector].
type SelectorFunc func(ctx context.Context, md *maven.Metadata) (string, error)

// SelectVersion calls f.
func (f SelectorFunc) SelectVersion(ctx context.Context, md *maven.Metadata) (string, error) {
	return f(ctx, md)
}

// ChoiceSelector answers with a fixed choice token: "latest", "release",
// or a zero-based index into the version list.
type ChoiceSelector string

// SelectVersion maps the token through [maven.Metadata.Choose].
func (s ChoiceSelector) SelectVersion(_ context.Context, md *maven.Metadata) (string, error) {
	v, ok := md.Choose(string(s))
	if !ok {
		return "", errors.New(errors.ErrCodeVersionUndetermined,
			"choice %q does not designate a version (have %d versions)", string(s), len(md.Versions))
	}
	return v, nil
}

// CompleteVersion returns c unchanged when it has a version. Otherwise it
// fetches the metadata document and asks sel. Every failure is a
// VERSION_UNDETERMINED error.
func (r *Resolver) CompleteVersion(ctx context.Context, c maven.Coordinate, sel VersionSelector) (maven.Coordinate, error) {
	if c.HasVersion() {
		return c, nil
	}
	if sel == nil {
		return c, errors.New(errors.ErrCodeVersionUndetermined, "no version given for %s:%s", c.GroupID, c.ArtifactID)
	}

	md, ok := r.Metadata(ctx, c)
	if !ok {
		return c, errors.New(errors.ErrCodeVersionUndetermined,
			"cannot list versions of %s:%s", c.GroupID, c.ArtifactID)
	}

	v, err := sel.SelectVersion(ctx, md)
	if err != nil {
		if errors.Is(err, errors.ErrCodeVersionUndetermined) {
			return c, err
		}
		return c, errors.Wrap(errors.ErrCodeVersionUndetermined, err, "select version of %s:%s", c.GroupID, c.ArtifactID)
	}
	if v == "" {
		return c, errors.New(errors.ErrCodeVersionUndetermined, "cannot determine version of %s:%s", c.GroupID, c.ArtifactID)
	}

	c.Version = v
	if err := c.Validate(); err != nil {
		return c, errors.Wrap(errors.ErrCodeVersionUndetermined, err, "selected version of %s:%s", c.GroupID, c.ArtifactID)
	}
	r.logger.Info("selected version", "coordinate", c)
	return c, nil
}
