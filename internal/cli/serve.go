package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckdraw/internal/api"
	"github.com/matzehuels/deckdraw/pkg/cache"
	"github.com/matzehuels/deckdraw/pkg/pipeline"
	"github.com/matzehuels/deckdraw/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // redis address for the shared artifact cache
	mongoURI string // mongodb uri for scene persistence
}

// newServeCmd creates the serve command, which hosts the render API.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var c cache.Cache
			if opts.redis != "" {
				rc, err := cache.NewRedisCache(ctx, opts.redis)
				if err != nil {
					return err
				}
				c = rc
				logger.Info("using redis artifact cache", "addr", opts.redis)
			} else {
				c = cache.NewNullCache()
			}

			runner := pipeline.NewRunner(c, logger)
			defer runner.Close()

			apiOpts := []api.Option{api.WithLogger(logger)}
			if opts.mongoURI != "" {
				st, err := store.NewMongoStore(ctx, opts.mongoURI)
				if err != nil {
					return err
				}
				defer st.Close(ctx)
				apiOpts = append(apiOpts, api.WithStore(st))
				logger.Info("scene persistence enabled")
			}

			srv := api.NewServer(runner, apiOpts...)
			logger.Info("listening", "addr", opts.addr)
			return http.ListenAndServe(opts.addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for the shared artifact cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "mongodb uri for scene persistence")

	return cmd
}
