package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnfetch/pkg/download"
	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/observability"
	"github.com/matzehuels/mvnfetch/pkg/pipeline"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// fetchFlags holds flags for the fetch command.
type fetchFlags struct {
	coordinateFlags
	repoFlags
	output string
	report string
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var f fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch [coordinate]",
		Short: "Download an artifact and its transitive dependencies",
		Long: `Resolve the dependency tree of a Maven artifact and download every artifact
of the tree into the output directory. Artifacts already present there are
skipped. Dependencies with test or provided scope are left out.

When the coordinate has no version, the versions published in
maven-metadata.xml are offered in an interactive picker, or --choice selects
one non-interactively.`,
		Example: `  mvnfetch fetch -l org.apache.commons:commons-lang3:3.14.0 -o libs
  mvnfetch fetch -l com.squareup.okhttp3:okhttp -u mavenCentral -u google --choice release`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.resolveArg(args); err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), &f)
		},
	}

	f.coordinateFlags.register(cmd)
	f.repoFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (default from config or .)")
	cmd.Flags().StringVar(&f.report, "report", "", "write a JSON report of the run to this file")
	_ = cmd.RegisterFlagCompletionFunc("maven_urls", c.completeRepositories)

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, f *fetchFlags) error {
	logger := loggerFromContext(ctx)
	stats := &observability.Counter{}

	runner, cfg, err := c.newRunner(&f.repoFlags, stats)
	if err != nil {
		return err
	}
	output := f.output
	if output == "" {
		output = cfg.Output
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Coordinate: f.library,
		OutputDir:  output,
		Selector:   selectorFor(f.choice),
	})
	if err != nil {
		return err
	}
	prog.done("fetch complete", "root", result.Root.Coordinate)

	if f.report != "" {
		if err := writeReport(f.report, result, stats.Snapshot()); err != nil {
			return err
		}
	}

	printFetchSummary(result, f.report)
	return nil
}

// reportFile is the JSON document written by --report.
type reportFile struct {
	*download.Report
	Resolution resolve.Stats       `json:"resolution"`
	HTTP       observability.Stats `json:"http"`
}

func writeReport(path string, result *pipeline.Result, http observability.Stats) error {
	data, err := json.MarshalIndent(reportFile{
		Report:     result.Report,
		Resolution: result.Stats.Resolve,
		HTTP:       http,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write report")
	}
	return nil
}

func printFetchSummary(result *pipeline.Result, reportPath string) {
	r := result.Report
	printSuccess("Fetched %s into %s", StyleValue.Render(r.Root), StyleValue.Render(r.OutputDir))
	printStats(
		statCount{result.Stats.NodeCount, "nodes"},
		statCount{len(r.Downloaded), "downloaded"},
		statCount{len(r.Skipped), "already present"},
		statCount{len(r.Failed), "unavailable"},
	)
	if len(r.Failed) > 0 {
		printWarning("%d artifacts could not be downloaded from any repository", len(r.Failed))
		for _, c := range r.Failed {
			printDetail("%s", c)
		}
	}
	if reportPath != "" {
		printFile(reportPath)
	}
}
