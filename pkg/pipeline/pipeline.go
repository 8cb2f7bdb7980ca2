// Package pipeline runs the resolve → download pipeline for mvnfetch.
//
// A [Runner] is the context object of one session: it owns the repository
// client, the resolver, the logger and the download hooks, and hands them to
// each stage explicitly. Nothing is kept in package-level state, so several
// Runners can coexist in one process.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, logger, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Coordinate: "org.apache.commons:commons-lang3:3.14.0",
//	    OutputDir:  "libs",
//	})
//
// Run individual stages:
//
//	// Resolve only
//	root, err := runner.Resolve(ctx, "org.example:foo", resolve.ChoiceSelector("release"))
//
//	// Download an existing tree
//	report, err := runner.Fetch(ctx, root, "libs")
package pipeline

import (
	"time"

	"github.com/matzehuels/mvnfetch/pkg/download"
	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

const (
	// DefaultOutputDir is where artifacts land when no directory is given.
	DefaultOutputDir = "."

	// DefaultLockWait is how long Fetch waits for another run to release
	// the output directory.
	DefaultLockWait = 30 * time.Second
)

// Options configures a full pipeline run.
type Options struct {
	// Coordinate is "groupId:artifactId[:version]".
	Coordinate string `json:"coordinate"`
	// OutputDir receives the artifacts. Defaults to DefaultOutputDir.
	OutputDir string `json:"output_dir,omitempty"`

	// Selector picks a version when Coordinate has none.
	Selector resolve.VersionSelector `json:"-"`
}

// ValidateAndSetDefaults checks required fields and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Coordinate == "" {
		return errors.New(errors.ErrCodeInvalidInput, "coordinate is required")
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the resolved dependency tree.
	Root *resolve.Node

	// Report lists what the download stage did.
	Report *download.Report

	// Stats contains timing and resolution counts.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	Resolve      resolve.Stats
	ResolveTime  time.Duration
	DownloadTime time.Duration
}
