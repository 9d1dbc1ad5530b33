package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/server"
)

// serverCloseTimeout bounds backend disconnects during shutdown.
const serverCloseTimeout = 5 * time.Second

// serveCommand creates the serve command for running the layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Without a config file the server runs with an in-memory layout store and no
cache, suitable for local use. A TOML config file enables the MongoDB store
and the file or Redis cache backends:

  addr = ":8080"

  [cache]
  backend = "redis"
  redis_addr = "localhost:6379"
  namespace = "prod:"

  [store]
  backend = "mongo"
  mongo_uri = "mongodb://localhost:27017"
  mongo_database = "mosaic"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
	cfg := server.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = server.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if addr != "" {
		cfg.Addr = addr
	}

	srv, err := server.New(ctx, cfg, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), serverCloseTimeout)
		defer cancel()
		_ = srv.Close(closeCtx)
	}()

	return srv.Run(ctx)
}
