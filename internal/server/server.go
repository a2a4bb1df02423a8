package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/projectfs/internal/api/http"
	"github.com/GriffinCanCode/projectfs/internal/api/middleware"
	"github.com/GriffinCanCode/projectfs/internal/config"
	"github.com/GriffinCanCode/projectfs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/projectfs/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/projectfs/internal/logging"
	"github.com/GriffinCanCode/projectfs/internal/providers/filesystem"
	"github.com/GriffinCanCode/projectfs/internal/service"
)

// shutdownTimeout bounds in-flight request draining on Close
const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if cfg.Project.Root != "" {
		if _, err := filesystem.CanonicalRoot(cfg.Project.Root); err != nil {
			return nil, fmt.Errorf("project root: %w", err)
		}
	}

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("projectfs", logger.Component("trace"))
	registry := service.NewRegistry().WithTracer(tracer)

	logger.Info("registering service providers")
	sandbox := filesystem.New(SandboxOptions(cfg, logger.Component("filesystem")))
	opts := sandbox.Options()
	logger.Info("sandbox configured",
		zap.String("default_root", opts.DefaultRoot),
		zap.Int("exclusions", opts.Exclusions.Len()),
		zap.Int("max_depth", opts.MaxDepth),
		zap.Int("max_search_results", opts.MaxSearchResults),
		zap.Int64("max_search_file_size", opts.MaxSearchFileSize),
	)
	provider := filesystem.NewProvider(sandbox).WithMetrics(metrics)
	if err := registry.Register(provider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("register filesystem provider: %w", err)
	}

	stats := registry.Stats()
	logger.Info("services registered",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)

	router := newRouter(cfg, logger, metrics, tracer)
	RegisterRoutes(router, handlers.NewHandlers(registry, logger.Component("http")), metrics)

	return &Server{
		cfg:      cfg,
		router:   router,
		registry: registry,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// SandboxOptions converts configuration into filesystem options
func SandboxOptions(cfg *config.Config, logger *zap.Logger) filesystem.Options {
	opts := filesystem.DefaultOptions()
	opts.Exclusions = cfg.Exclusions()
	opts.MaxSearchResults = cfg.Search.MaxResults
	opts.MaxSearchFileSize = cfg.Search.MaxFileSize
	opts.MaxDepth = cfg.Project.MaxDepth
	opts.DefaultRoot = cfg.Project.Root
	opts.Logger = logger
	return opts
}

func newRouter(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics, tracer *tracing.Tracer) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger.Component("access")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	return router
}

// RegisterRoutes mounts every endpoint on router
func RegisterRoutes(router gin.IRouter, h *handlers.Handlers, metrics *monitoring.Metrics) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/execute", h.ExecuteService)

	// Project filesystem
	router.GET("/project/root", h.ProjectRoot)
	fs := router.Group("/fs")
	{
		fs.POST("/read", h.ReadFile)
		fs.POST("/write", h.WriteFile)
		fs.POST("/edit", h.EditFile)
		fs.POST("/list", h.ListDirectory)
		fs.POST("/search", h.SearchFiles)
		fs.POST("/stats", h.DirectoryStats)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the service registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("starting projectfs server",
		zap.String("addr", s.http.Addr),
		zap.String("project_root", s.cfg.Project.Root),
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close drains in-flight requests and releases resources
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.tracer.Close()
	if err != nil {
		s.logger.Error("shutdown failed", zap.Error(err))
	} else {
		s.logger.Info("server stopped")
	}
	_ = s.logger.Sync()
	return err
}
