package main

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/cv"
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/internal/mocks"
	"github.com/vango-dev/admindash/internal/server"
	"github.com/vango-dev/admindash/internal/views"
	"github.com/vango-dev/admindash/pkg/middleware"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port  int
		host  string
		mock  bool
		delay string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long: `Start the dashboard server.

Configuration is read from admindash.json or admindash.toml, then from
ADMINDASH_* environment variables, then from flags.

Examples:
  admindash serve
  admindash serve --port=8080 --mocks
  admindash serve --perceived-latency=300ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("mocks") {
				cfg.Mocks.Enabled = mock
			}
			if delay != "" {
				cfg.Loader.PerceivedLatency = delay
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, flags, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&mock, "mocks", false, "Answer data API requests from built-in fixtures")
	cmd.Flags().StringVar(&delay, "perceived-latency", "", "Minimum time every view spends loading, e.g. 300ms")

	return cmd
}

// deps holds everything serve builds before the HTTP server.
type deps struct {
	app     *server.App
	mocks   *mocks.Worker
	closeDB func() error
}

func buildApp(ctx context.Context, cfg *config.Config, flags *globalFlags, logw io.Writer) (*deps, error) {
	logger, err := newLogger(logw, cfg.Log, flags)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Duration("api.timeout")
	var (
		worker *mocks.Worker
		client *api.Client
	)
	if cfg.Mocks.Enabled {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil {
			return nil, errors.New("D002").WithField("api.baseUrl").Wrap(err)
		}
		worker = mocks.New(
			mocks.WithHost(u.Host),
			mocks.WithLatency(cfg.Duration("mocks.latency")),
			mocks.WithLogger(logger.With("component", "mocks")),
		)
		worker.Start()
		client = api.NewClient(cfg.API.BaseURL, worker.Client(timeout), timeout)
	} else {
		client = api.NewClient(cfg.API.BaseURL, nil, timeout)
	}

	catalog := views.NewCatalog(views.Deps{API: client})
	table, err := views.NewTable(catalog)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := cv.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := server.New(server.Options{
		Config:   cfg,
		Table:    table,
		Catalog:  catalog,
		Store:    store,
		Metrics:  middleware.NewMetrics(middleware.WithRegistry(reg)),
		Gatherer: reg,
		Mocks:    worker,
		Logger:   logger,
	})
	if err != nil {
		closeStore()
		return nil, err
	}

	logger.Info("dashboard configured",
		"routes", len(table.Routes()),
		"views", len(catalog.Keys()),
		"cv_store", store.Backend(),
		"mocks", cfg.Mocks.Enabled,
	)
	return &deps{app: app, mocks: worker, closeDB: closeStore}, nil
}

func runServe(ctx context.Context, cfg *config.Config, flags *globalFlags, logw io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	d, err := buildApp(startCtx, cfg, flags, logw)
	cancel()
	if err != nil {
		return err
	}
	defer d.closeDB()

	return server.NewServer(d.app, cfg.Address(), cfg.Duration("server.shutdownTimeout")).Run()
}
