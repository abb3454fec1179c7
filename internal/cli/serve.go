package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocamap/vocamap/internal/server"
	"github.com/vocamap/vocamap/pkg/cache"
	"github.com/vocamap/vocamap/pkg/pipeline"
	"github.com/vocamap/vocamap/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the vocamap HTTP API server",
		Long: `Run the vocamap HTTP API server.

The server stores project snapshots and computes relationship map layouts
on demand. Backends for the snapshot store (memory, file, mongo) and the
layout cache (null, file, redis) are selected through a TOML config file.

Without --config the server runs with an in-memory store and no cache,
which is suitable for local development only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")

	return cmd
}

// runServe builds the configured backends and runs the server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
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

	prog := newProgress(c.Logger)

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	ch, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	prog.done(fmt.Sprintf("Initialized %s store and %s cache", cfg.Store.Type, cfg.Cache.Type))

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	var opts []server.Option
	if cfg.Geometry != nil {
		opts = append(opts, server.WithGeometry(*cfg.Geometry))
	}

	c.Logger.Info("starting server",
		"addr", cfg.Addr,
		"store", cfg.Store.Type,
		"cache", cfg.Cache.Type)

	srv := server.New(st, runner, c.Logger, opts...)
	return srv.ListenAndServe(ctx, cfg.Addr)
}

// newStore builds the snapshot store backend selected by the config.
func newStore(ctx context.Context, cfg server.StoreConfig) (store.Store, error) {
	switch cfg.Type {
	case "memory", "":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}

// newServerCache builds the layout cache backend selected by the config.
func newServerCache(ctx context.Context, cfg server.CacheConfig) (cache.Cache, error) {
	switch cfg.Type {
	case "null", "":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache type: %q", cfg.Type)
	}
}
