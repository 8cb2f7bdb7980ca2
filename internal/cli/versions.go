package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// versionsCommand creates the versions command.
func (c *CLI) versionsCommand() *cobra.Command {
	var f repoFlags

	cmd := &cobra.Command{
		Use:   "versions <groupId:artifactId>",
		Short: "List the published versions of an artifact",
		Long: `Fetch maven-metadata.xml for an artifact and print its latest and release
versions and the indexed version list. The index can be passed to
'fetch --choice'.`,
		Example: `  mvnfetch versions org.apache.commons:commons-lang3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersions(cmd.Context(), args[0], &f)
		},
	}

	f.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("maven_urls", c.completeRepositories)
	return cmd
}

func (c *CLI) runVersions(ctx context.Context, desc string, f *repoFlags) error {
	runner, _, err := c.newRunner(f, nil)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinner(ctx, os.Stderr, "Fetching maven-metadata.xml...")
		spinner.Start()
	}
	md, err := runner.Versions(ctx, desc)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, StyleTitle.Render(md.GroupID+":"+md.ArtifactID))
	printKeyValue("latest", orDash(md.Latest))
	printKeyValue("release", orDash(md.Release))
	if md.LastUpdated != "" {
		printKeyValue("updated", md.LastUpdated)
	}
	for i, v := range md.Versions {
		fmt.Fprintf(c.out, "  %s %s\n", StyleNumber.Render(fmt.Sprintf("[%d]", i)), v)
	}
	printNextStep("Download one", fmt.Sprintf("%s fetch -l %s:%s --choice release", appName, md.GroupID, md.ArtifactID))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
