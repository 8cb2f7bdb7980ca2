package maven

import (
	"strings"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

const (
	projectGroupToken   = "${project.groupId}"
	projectVersionToken = "${project.version}"
)

// excludedScopes lists dependency scopes that never reach the tree.
var excludedScopes = map[string]bool{
	"provided": true,
	"test":     true,
}

// Manifest is the part of a POM the resolver needs.
type Manifest struct {
	// Packaging from <packaging>, DefaultPackaging when absent.
	Packaging string
	// Dependencies that passed filtering, in declaration order. Each has
	// DefaultPackaging until its own manifest is resolved.
	Dependencies []Coordinate
	// Skipped holds one MALFORMED_DEPENDENCY error per declaration that was
	// dropped because it was incomplete or kept an unresolved property.
	Skipped []error
	// Excluded counts declarations dropped for their scope.
	Excluded int
}

// ParseManifest parses a POM declared by parent.
//
// Only the direct <project><dependencies> block is read; dependencyManagement
// and profiles are ignored. See the package documentation for the filtering
// rules.
func ParseManifest(data []byte, parent Coordinate) (*Manifest, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	m := &Manifest{Packaging: DefaultPackaging}
	if p, ok := root.ChildText("packaging"); ok && errors.ValidateCoordinatePart("packaging", p) == nil {
		m.Packaging = p
	}

	deps, ok := root.Find("dependencies")
	if !ok {
		return m, nil
	}

	for _, decl := range deps.FindAll("dependency") {
		if scope, _ := decl.ChildText("scope"); excludedScopes[scope] {
			m.Excluded++
			continue
		}
		c, err := declaredCoordinate(decl, parent)
		if err != nil {
			m.Skipped = append(m.Skipped, err)
			continue
		}
		m.Dependencies = append(m.Dependencies, c)
	}
	return m, nil
}

func declaredCoordinate(decl Element, parent Coordinate) (Coordinate, error) {
	group, hasGroup := decl.ChildText("groupId")
	artifact, hasArtifact := decl.ChildText("artifactId")
	version, hasVersion := decl.ChildText("version")
	if !hasGroup || !hasArtifact || !hasVersion {
		return Coordinate{}, errors.New(errors.ErrCodeMalformedDependency,
			"incomplete declaration %s:%s:%s in %s", group, artifact, version, parent)
	}

	c := NewCoordinate(
		strings.ReplaceAll(group, projectGroupToken, parent.GroupID),
		artifact,
		strings.ReplaceAll(version, projectVersionToken, parent.Version),
	)
	if c.HasPlaceholder() {
		return Coordinate{}, errors.New(errors.ErrCodeMalformedDependency,
			"unresolved property in %s (declared by %s)", c, parent)
	}
	if err := c.Validate(); err != nil {
		return Coordinate{}, errors.Wrap(errors.ErrCodeMalformedDependency, err,
			"invalid declaration %s in %s", c, parent)
	}
	return c, nil
}
