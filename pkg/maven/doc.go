// Package maven models Maven coordinates and parses the two documents a
// Maven-style repository serves for them.
//
// # Coordinates
//
// A [Coordinate] is identified by the (groupId, artifactId, version) triple.
// Packaging is metadata learned while resolving and does not take part in
// equality:
//
//	c, err := maven.ParseCoordinate("com.google.guava:guava:32.1.3-jre")
//	c.ManifestPath()        // com/google/guava/guava/32.1.3-jre/guava-32.1.3-jre.pom
//	c.ArtifactPath("jar")   // com/google/guava/guava/32.1.3-jre/guava-32.1.3-jre.jar
//
// The version is optional in [ParseCoordinate]; callers complete it from
// the metadata document.
//
// # Documents
//
// [ParseManifest] reads a POM and returns its packaging and the dependency
// declarations that survive filtering. [ParseMetadata] reads
// maven-metadata.xml. Both go through [Document], which detects the
// namespace of the root element once and applies it to every child lookup,
// so namespaced and bare documents parse the same way.
//
// # Dependency Filtering
//
// Declarations with scope "provided" or "test" are dropped. The tokens
// ${project.groupId} and ${project.version} are replaced with the declaring
// coordinate's group and version; any other property reference causes the
// declaration to be skipped and reported in [Manifest.Skipped].
package maven
