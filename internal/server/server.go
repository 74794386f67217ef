// Package server exposes the scoring engine, questionnaire sessions and
// insights over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/planetprint/internal/greenops"
	"github.com/rshade/planetprint/internal/insights"
	"github.com/rshade/planetprint/internal/session"
)

const (
	defaultShutdownTimeout = 15 * time.Second
	defaultDemoUsers       = 100
	maxBodyBytes           = 1 << 20
)

// Options configure a Server.
type Options struct {
	Addr            string
	CORS            bool
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Region is the comparison population used when a request names none.
	Region   insights.Region
	GreenOps greenops.Options

	Demo     bool
	DemoSeed uint64

	Logger zerolog.Logger
	// Registry receives the metrics. Nil creates a private registry.
	Registry *prometheus.Registry
	// Now is the clock of the demo endpoints. Nil means time.Now.
	Now func() time.Time
}

// Server is the HTTP API.
type Server struct {
	opts     Options
	engine   *gin.Engine
	store    *session.Store
	metrics  *Metrics
	registry *prometheus.Registry
}

// New builds the gin engine and registers every route.
func New(opts Options, store *session.Store) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Region == "" {
		opts.Region = insights.DefaultRegion
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		opts:     opts,
		engine:   gin.New(),
		store:    store,
		metrics:  MustNewMetrics(opts.Registry, store.Len),
		registry: opts.Registry,
	}

	s.engine.Use(gin.Recovery(), requestLogger(opts.Logger), instrument(s.metrics))
	if opts.CORS {
		corsConfig := cors.DefaultConfig()
		if len(opts.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = opts.AllowedOrigins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
		corsConfig.ExposeHeaders = []string{RequestIDHeader}
		s.engine.Use(cors.New(corsConfig))
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api/v1")
	api.GET("/questions", s.handleQuestions)
	api.POST("/footprint", s.handleFootprint)
	api.GET("/facts", s.handleFacts)

	sessions := api.Group("/sessions")
	{
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.PATCH("/:id/answers", s.handleAnswers)
		sessions.DELETE("/:id/answers/:field", s.handleClearAnswer)
		sessions.DELETE("/:id", s.handleDeleteSession)
		sessions.GET("/:id/insights", s.handleInsights)
	}

	if s.opts.Demo {
		demo := api.Group("/demo")
		demo.GET("/admin", s.handleDemoAdmin)
		demo.GET("/grid", s.handleDemoGrid)
		demo.GET("/models", s.handleDemoModels)
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on opts.Addr until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Ctx(ctx).
			Str("component", "server").
			Str("addr", ln.Addr().String()).
			Bool("demo", s.opts.Demo).
			Msg("HTTP API listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info().Ctx(ctx).Str("component", "server").Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
