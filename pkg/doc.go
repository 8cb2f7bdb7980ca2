// Package pkg provides the libraries behind mvnfetch.
//
// # Overview
//
// mvnfetch resolves the transitive dependency tree of a Maven artifact across
// one or more remote repositories and downloads every artifact of that tree
// into a local directory. The pkg directory is organized as:
//
//  1. [maven] - Coordinates, repository paths, POM and metadata parsing
//  2. [repository] - Repository sets and the sequential HTTP fetch client
//  3. [resolve] - Manifest resolution, version completion and tree building
//  4. [download] - Local inventory, output-dir lock and artifact download
//  5. [pipeline] - Orchestration (parse → resolve → download)
//  6. [mirror] - Read-only Maven repository over a download directory
//  7. [render/treeviz] - Text, DOT and SVG renderings of a tree
//
// # Architecture
//
// The data flow for a fetch run:
//
//	groupId:artifactId[:version]
//	         ↓
//	    [maven] ParseCoordinate
//	         ↓
//	    [resolve] CompleteVersion (maven-metadata.xml)
//	         ↓
//	    [resolve] Builder.Build (one POM per coordinate)
//	         ↓
//	    [download] Scan + Fetcher.Download
//	         ↓
//	    <dir>/<groupId>/<artifactId>/<artifactId>-<version>.<packaging>
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/mvnfetch/pkg/pipeline"
//	    "github.com/matzehuels/mvnfetch/pkg/repository"
//	    "github.com/matzehuels/mvnfetch/pkg/resolve"
//	)
//
//	repos, _ := repository.NewSet([]string{"mavenCentral"}, nil)
//	runner := pipeline.NewRunner(repository.NewClient(repos), nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Coordinate: "org.slf4j:slf4j-simple",
//	    OutputDir:  "libs",
//	    Selector:   resolve.ChoiceSelector("release"),
//	})
//
// # Error Handling
//
// Every package reports failures through [errors]. Only invalid input,
// invalid configuration, an undetermined version, a dependency cycle and a
// held output lock are fatal; unavailable manifests and artifacts are logged
// and the run continues.
//
// [maven]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/maven
// [repository]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/repository
// [resolve]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/resolve
// [download]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/download
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/pipeline
// [mirror]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/mirror
// [render/treeviz]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/render/treeviz
// [errors]: https://pkg.go.dev/github.com/matzehuels/mvnfetch/pkg/errors
package pkg
