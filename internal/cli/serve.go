package cli

import (
	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

The server exposes the scene library and the layout pipeline over a
JSON API, plus rendered pressure graphs. Storage and cache backends
are selected by the config file; the defaults store scenes and
artifacts under the user's home directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx := cmd.Context()
			srv, cleanup, err := server.Build(ctx, cfg, c.Logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")

	return cmd
}
