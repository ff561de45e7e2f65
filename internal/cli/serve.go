package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitgen/pkg/cache"
	"github.com/matzehuels/circuitgen/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP build service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		tablePath string
		addr      string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schematics over HTTP",
		Long: `Serve schematics over HTTP.

The listen address defaults to $` + envAddr + ` or ` + defaultAddr + `. Builds share the
cache selected by $` + envCache + ` under a server-only key prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := loadTable(tablePath)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, false, cache.NewScopedKeyer(nil, "server:"))
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Table:   t,
				Timeout: timeout,
				Logger:  loggerFromContext(ctx),
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	defAddr := os.Getenv(envAddr)
	if defAddr == "" {
		defAddr = defaultAddr
	}
	addTableFlag(cmd.Flags(), &tablePath)
	cmd.Flags().StringVar(&addr, "addr", defAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")

	return cmd
}
