// Package mirror serves an mvnfetch output directory as a read-only Maven
// repository.
//
// The output directory keeps one directory per groupId (dots included). The
// server translates standard repository paths onto that layout:
//
//	GET /org/example/foo/1.0/foo-1.0.jar     → <dir>/org.example/foo/foo-1.0.jar
//	GET /org/example/foo/maven-metadata.xml  → generated from the inventory
//	GET /                                    → plain-text list of coordinates
//
// Build tools can point at the server to consume an offline copy. POM files
// are not stored by the downloader, so a manifest request is answered with a
// minimal generated POM declaring only the packaging.
package mirror
