package maven

import (
	"strings"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

// DefaultPackaging is used until a manifest declares otherwise.
const DefaultPackaging = "jar"

const metadataFile = "maven-metadata.xml"

// Coordinate identifies a published Maven package.
//
// Identity is the (GroupID, ArtifactID, Version) triple; Packaging is
// excluded from [Coordinate.Equal] and [Coordinate.Key].
type Coordinate struct {
	GroupID    string // e.g. "org.apache.commons"
	ArtifactID string // e.g. "commons-lang3"
	Version    string // e.g. "3.14.0", empty until selected
	Packaging  string // e.g. "jar", "aar", "pom"
}

// NewCoordinate returns a coordinate with the default packaging.
func NewCoordinate(groupID, artifactID, version string) Coordinate {
	return Coordinate{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Packaging:  DefaultPackaging,
	}
}

// ParseCoordinate parses "groupId:artifactId[:version]".
//
// A missing version yields a coordinate with an empty Version; the caller is
// expected to complete it. Empty segments, more than three segments, or
// segments that are unsafe as path components are INVALID_INPUT errors.
// ParseCoordinate never touches the network.
func ParseCoordinate(desc string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(desc), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid coordinate %q (expected groupId:artifactId[:version])", desc)
	}

	c := NewCoordinate(parts[0], parts[1], "")
	if err := errors.ValidateCoordinatePart("groupId", c.GroupID); err != nil {
		return Coordinate{}, err
	}
	if err := errors.ValidateCoordinatePart("artifactId", c.ArtifactID); err != nil {
		return Coordinate{}, err
	}
	if len(parts) == 3 {
		c.Version = parts[2]
		if err := errors.ValidateCoordinatePart("version", c.Version); err != nil {
			return Coordinate{}, err
		}
	}
	return c, nil
}

// Key returns "groupId:artifactId:version", the identity used by sets.
func (c Coordinate) Key() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// String returns the same form as [Coordinate.Key].
func (c Coordinate) String() string { return c.Key() }

// Equal reports whether group, artifact and version match exactly.
func (c Coordinate) Equal(other Coordinate) bool {
	return c.GroupID == other.GroupID &&
		c.ArtifactID == other.ArtifactID &&
		c.Version == other.Version
}

// HasVersion reports whether the version is set.
func (c Coordinate) HasVersion() bool { return c.Version != "" }

// HasPlaceholder reports whether any identity component still contains an
// unresolved ${...} property reference.
func (c Coordinate) HasPlaceholder() bool {
	return strings.Contains(c.GroupID, "${") ||
		strings.Contains(c.ArtifactID, "${") ||
		strings.Contains(c.Version, "${")
}

// Validate checks every identity component (and packaging, if set) for
// values that are unsafe as path components.
func (c Coordinate) Validate() error {
	if err := errors.ValidateCoordinatePart("groupId", c.GroupID); err != nil {
		return err
	}
	if err := errors.ValidateCoordinatePart("artifactId", c.ArtifactID); err != nil {
		return err
	}
	if err := errors.ValidateCoordinatePart("version", c.Version); err != nil {
		return err
	}
	if c.Packaging != "" {
		return errors.ValidateCoordinatePart("packaging", c.Packaging)
	}
	return nil
}

// PackagingOrDefault returns Packaging, or [DefaultPackaging] when unset.
func (c Coordinate) PackagingOrDefault() string {
	if c.Packaging == "" {
		return DefaultPackaging
	}
	return c.Packaging
}

// GroupPath returns the group with dots replaced by slashes.
func (c Coordinate) GroupPath() string {
	return strings.ReplaceAll(c.GroupID, ".", "/")
}

// MetadataPath returns the repository-relative path of maven-metadata.xml.
func (c Coordinate) MetadataPath() string {
	return c.GroupPath() + "/" + c.ArtifactID + "/" + metadataFile
}

// ManifestPath returns the repository-relative path of the POM.
func (c Coordinate) ManifestPath() string {
	return c.ArtifactPath("pom")
}

// ArtifactPath returns the repository-relative path of the file with the
// given extension, e.g. "com/example/foo/1.2/foo-1.2.jar".
func (c Coordinate) ArtifactPath(packaging string) string {
	return c.GroupPath() + "/" + c.ArtifactID + "/" + c.Version + "/" + c.FileName(packaging)
}

// FileName returns "artifactId-version.packaging".
func (c Coordinate) FileName(packaging string) string {
	return c.ArtifactID + "-" + c.Version + "." + packaging
}
