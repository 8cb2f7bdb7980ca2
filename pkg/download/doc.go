// Package download writes the artifacts of a resolved tree to disk.
//
// The output directory has two levels of nesting:
//
//	<dir>/<groupId>/<artifactId>/<artifactId>-<version>.<packaging>
//
// The groupId is kept verbatim (dots included) as a single directory, which
// is the layout [Scan] reads back to build the [LocalSet] of artifacts that
// are already present. [Fetcher.Download] walks a tree in pre-order, skips
// coordinates found in the LocalSet, and fetches the rest through the
// repository client. A failed download is recorded in the [Report] and never
// stops the walk.
//
// [WithLock] serializes runs that share an output directory.
package download
