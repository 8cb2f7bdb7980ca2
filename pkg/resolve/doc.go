// Package resolve expands a root Maven coordinate into its dependency tree.
//
// # Overview
//
// A [Resolver] fetches and parses manifests (POMs) and metadata documents
// through any [Source], typically a *repository.Client. A [Builder] walks
// the manifests recursively, in pre-order, and produces a [Node] tree:
//
//	r := resolve.NewResolver(client, logger)
//	b := resolve.NewBuilder(r, resolve.Options{Logger: logger})
//	root, err := b.Build(ctx, maven.NewCoordinate("org.example", "foo", "1.0"))
//
// # De-duplication
//
// Every coordinate whose manifest was fetched during a build is recorded in
// a [ResolvedSet]. A later occurrence of the same (group, artifact, version)
// is attached as a leaf that reuses the recorded packaging; its
// dependencies are already represented under the first occurrence. A
// diamond-shaped graph therefore fetches each manifest once.
//
// # Failures
//
// An unreachable or unparsable manifest leaves its node childless and the
// build continues. A coordinate that reappears on the active resolution
// path aborts the build with a CYCLE_DETECTED error.
//
// # Versions
//
// When the root has no version, [Resolver.CompleteVersion] fetches
// maven-metadata.xml and asks a [VersionSelector]. [ChoiceSelector] accepts
// the tokens "latest", "release" or a zero-based index; the CLI also offers
// an interactive picker. No usable answer is a VERSION_UNDETERMINED error.
package resolve
