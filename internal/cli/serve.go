package cli

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnfetch/pkg/mirror"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		dir  string
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an output directory as a Maven repository",
		Long: `Serve a directory written by 'fetch' over HTTP using the standard Maven
repository layout, so build tools can consume the offline copy. Version
metadata and minimal POMs are generated from the files present.`,
		Example: `  mvnfetch serve -o libs --addr 127.0.0.1:8081`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), dir, addr)
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory to serve")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8081", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, dir, addr string) error {
	logger := loggerFromContext(ctx)
	printInfo("Serving %s at http://%s/", StyleValue.Render(dir), addr)

	err := mirror.NewServer(dir, logger).ListenAndServe(ctx, addr)
	if ctx.Err() != nil || stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
