package resolve

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
)

// Node is one coordinate in a resolved dependency tree. Children appear in
// manifest declaration order.
type Node struct {
	Coordinate maven.Coordinate
	Children   []*Node
}

// Walk visits n and its descendants in pre-order. depth is 0 for n.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the tree rooted at n, counting
// repeated coordinates once per occurrence.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// ResolvedSet records the packaging of every coordinate whose manifest was
// fetched. The zero value is not usable; call [NewResolvedSet].
type ResolvedSet struct {
	packaging map[string]string
}

// NewResolvedSet returns an empty set.
func NewResolvedSet() *ResolvedSet {
	return &ResolvedSet{packaging: make(map[string]string)}
}

// Add records c and its packaging.
func (s *ResolvedSet) Add(c maven.Coordinate) {
	s.packaging[c.Key()] = c.PackagingOrDefault()
}

// Lookup returns the packaging recorded for c.
func (s *ResolvedSet) Lookup(c maven.Coordinate) (packaging string, ok bool) {
	packaging, ok = s.packaging[c.Key()]
	return packaging, ok
}

// Contains reports whether c was recorded.
func (s *ResolvedSet) Contains(c maven.Coordinate) bool {
	_, ok := s.packaging[c.Key()]
	return ok
}

// Len returns the number of recorded coordinates.
func (s *ResolvedSet) Len() int { return len(s.packaging) }

// Options configures a [Builder].
type Options struct {
	// MaxDepth limits how deep manifests are expanded. Dependencies below
	// the limit are kept as leaves. 0 means unlimited.
	MaxDepth int
	Logger   *log.Logger
}

// Stats summarizes one build.
type Stats struct {
	Fetched   int `json:"fetched"`   // manifests resolved
	Missing   int `json:"missing"`   // manifests unavailable or unreadable
	Reused    int `json:"reused"`    // nodes attached as leaves from the resolved set
	Skipped   int `json:"skipped"`   // malformed declarations dropped
	Excluded  int `json:"excluded"`  // test/provided declarations dropped
	Truncated int `json:"truncated"` // nodes left unexpanded by MaxDepth
}

// Builder expands coordinates into dependency trees. A Builder is not safe
// for concurrent use; each Build starts with an empty resolved set.
type Builder struct {
	source   ManifestSource
	logger   *log.Logger
	maxDepth int

	resolved *ResolvedSet
	path     []maven.Coordinate
	stats    Stats
}

// NewBuilder creates a Builder resolving manifests through source.
func NewBuilder(source ManifestSource, opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{source: source, logger: logger, maxDepth: opts.MaxDepth}
}

// Build resolves the tree rooted at root. Missing manifests are not
// errors. The returned error is a *errors.CycleError, an INVALID_INPUT
// error for an incomplete root, or the context's error.
func (b *Builder) Build(ctx context.Context, root maven.Coordinate) (*Node, error) {
	if !root.HasVersion() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root %s:%s has no version", root.GroupID, root.ArtifactID)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}

	b.resolved = NewResolvedSet()
	b.path = b.path[:0]
	b.stats = Stats{}

	node := &Node{Coordinate: root}
	fetched, err := b.expand(ctx, node, 0)
	if err != nil {
		return nil, err
	}
	if fetched {
		b.resolved.Add(node.Coordinate)
	}
	return node, nil
}

// Stats returns the statistics of the last Build.
func (b *Builder) Stats() Stats { return b.stats }

// Resolved returns the resolved set of the last Build.
func (b *Builder) Resolved() *ResolvedSet { return b.resolved }

// expand resolves node's manifest and recurses into its children. fetched
// reports whether the manifest was available.
func (b *Builder) expand(ctx context.Context, node *Node, depth int) (fetched bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	b.path = append(b.path, node.Coordinate)
	defer func() { b.path = b.path[:len(b.path)-1] }()

	m, ok := b.source.Resolve(ctx, node.Coordinate)
	if !ok {
		b.stats.Missing++
		return false, nil
	}
	b.stats.Fetched++
	b.stats.Excluded += m.Excluded
	node.Coordinate.Packaging = m.Packaging

	for _, skipped := range m.Skipped {
		b.stats.Skipped++
		b.logger.Warn("skipping dependency", "err", errors.UserMessage(skipped))
	}
	if m.Excluded > 0 {
		b.logger.Debug("excluded test/provided dependencies", "coordinate", node.Coordinate, "count", m.Excluded)
	}

	truncate := b.maxDepth > 0 && depth >= b.maxDepth
	if truncate && len(m.Dependencies) > 0 {
		b.stats.Truncated += len(m.Dependencies)
		b.logger.Warn("depth limit reached, not expanding", "coordinate", node.Coordinate, "depth", depth)
	}

	node.Children = make([]*Node, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		node.Children = append(node.Children, &Node{Coordinate: dep})
	}

	for _, child := range node.Children {
		if packaging, ok := b.resolved.Lookup(child.Coordinate); ok {
			child.Coordinate.Packaging = packaging
			b.stats.Reused++
			b.logger.Debug("already resolved", "coordinate", child.Coordinate)
			continue
		}
		if truncate {
			continue
		}
		if cycle := b.cycle(child.Coordinate); cycle != nil {
			return true, cycle
		}
		ok, err := b.expand(ctx, child, depth+1)
		if err != nil {
			return true, err
		}
		if ok {
			b.resolved.Add(child.Coordinate)
		}
	}
	return true, nil
}

// cycle returns a CycleError when c is already on the active path.
func (b *Builder) cycle(c maven.Coordinate) *errors.CycleError {
	for i, p := range b.path {
		if !p.Equal(c) {
			continue
		}
		path := make([]string, 0, len(b.path)-i+1)
		for _, q := range b.path[i:] {
			path = append(path, q.Key())
		}
		return &errors.CycleError{Path: append(path, c.Key())}
	}
	return nil
}
