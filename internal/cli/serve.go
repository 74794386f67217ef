package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rshade/planetprint/internal/config"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/logging"
	"github.com/rshade/planetprint/internal/server"
	"github.com/rshade/planetprint/internal/session"
)

type serveParams struct {
	addr string
	cors bool
	demo bool
}

func newServeCmd() *cobra.Command {
	var params serveParams

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serves the scoring engine, questionnaire sessions and insights over a
JSON HTTP API, with Prometheus metrics on /metrics.

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  # Listen on the configured address
  planetprint serve

  # Allow browser clients and enable the demo endpoints
  planetprint serve --addr 127.0.0.1:9000 --cors --demo`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&params.cors, "cors", false, "enable CORS")
	cmd.Flags().BoolVar(&params.demo, "demo", false, "enable the simulated demo endpoints")

	return cmd
}

func runServe(cmd *cobra.Command, params serveParams) error {
	cfg := *config.GetGlobalConfig()
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = params.addr
	}
	if cmd.Flags().Changed("cors") {
		cfg.Server.CORS = params.cors
	}
	if cmd.Flags().Changed("demo") {
		cfg.Demo.Enabled = params.demo
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	region, err := insights.ParseRegion(cfg.Output.Region)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	store := session.NewStore(session.Config{MaxSessions: cfg.Sessions.Max, TTL: cfg.Sessions.TTL})
	srv := server.New(server.Options{
		Addr:            cfg.Server.Addr,
		CORS:            cfg.Server.CORS,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Region:          region,
		GreenOps:        cfg.GreenOps.Options(),
		Demo:            cfg.Demo.Enabled,
		DemoSeed:        cfg.Demo.Seed,
		Logger:          logging.ComponentLogger(*logging.FromContext(ctx), "server"),
		Registry:        registry,
	}, store)

	cmd.Printf("Listening on %s\n", cfg.Server.Addr)
	return srv.Run(ctx)
}
