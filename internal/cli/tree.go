package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/render/treeviz"
)

// treeFlags holds flags for the tree command.
type treeFlags struct {
	coordinateFlags
	repoFlags
	dot      string
	svg      string
	detailed bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var f treeFlags

	cmd := &cobra.Command{
		Use:   "tree [coordinate]",
		Short: "Resolve and print the dependency tree without downloading",
		Long: `Resolve the dependency tree of a Maven artifact and print it. Coordinates that
appear more than once are expanded only at their first occurrence.

--dot and --svg also write the tree as a Graphviz graph; the SVG is rendered
in-process and needs no Graphviz installation.`,
		Example: `  mvnfetch tree org.slf4j:slf4j-simple:2.0.13
  mvnfetch tree -l com.google.guava:guava --choice release --svg guava.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.resolveArg(args); err != nil {
				return err
			}
			return c.runTree(cmd.Context(), &f)
		},
	}

	f.coordinateFlags.register(cmd)
	f.repoFlags.register(cmd)
	cmd.Flags().StringVar(&f.dot, "dot", "", "write the graph as Graphviz DOT to this file")
	cmd.Flags().StringVar(&f.svg, "svg", "", "write the graph as SVG to this file")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "include packaging in graph labels")
	_ = cmd.RegisterFlagCompletionFunc("maven_urls", c.completeRepositories)

	return cmd
}

func (c *CLI) runTree(ctx context.Context, f *treeFlags) error {
	logger := loggerFromContext(ctx)

	runner, _, err := c.newRunner(&f.repoFlags, nil)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	root, stats, err := runner.ResolveWithStats(ctx, f.library, selectorFor(f.choice))
	if err != nil {
		return err
	}
	prog.done("resolved", "root", root.Coordinate, "manifests", stats.Fetched)

	if err := treeviz.WriteText(c.out, root); err != nil {
		return err
	}
	printStats(
		statCount{root.Count(), "nodes"},
		statCount{stats.Reused, "repeated"},
		statCount{stats.Missing, "without manifest"},
		statCount{stats.Skipped, "malformed declarations"},
	)

	if f.dot == "" && f.svg == "" {
		return nil
	}
	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: f.detailed})
	if f.dot != "" {
		if err := os.WriteFile(f.dot, []byte(dot), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.dot)
		}
		printFile(f.dot)
	}
	if f.svg != "" {
		svg, err := treeviz.RenderSVG(ctx, dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
		}
		if err := os.WriteFile(f.svg, svg, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.svg)
		}
		printFile(f.svg)
	}
	return nil
}
