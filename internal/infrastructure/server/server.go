package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/snapserve/snapserve/internal/api/http"
	"github.com/snapserve/snapserve/internal/api/middleware"
	"github.com/snapserve/snapserve/internal/domain/content"
	"github.com/snapserve/snapserve/internal/domain/resolver"
	"github.com/snapserve/snapserve/internal/domain/snapshot"
	"github.com/snapserve/snapserve/internal/infrastructure/config"
	"github.com/snapserve/snapserve/internal/infrastructure/logging"
	"github.com/snapserve/snapserve/internal/infrastructure/monitoring"
	"github.com/snapserve/snapserve/internal/infrastructure/tracing"
	"github.com/snapserve/snapserve/internal/shared/paths"
	"github.com/snapserve/snapserve/internal/shared/utils"
)

// inventoryTimeout bounds the startup walk over the snapshot root
const inventoryTimeout = 30 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	snapshot *snapshot.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Initializing snapshot server",
		zap.String("port", cfg.Server.Port),
		zap.String("root", cfg.Snapshot.Root),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Initialize request tracing
	tracer := tracing.New("snapserve", logger.Logger)

	// A missing root is not fatal: every request simply misses until
	// a snapshot is put in place.
	if info, err := os.Stat(cfg.Snapshot.Root); err != nil || !info.IsDir() {
		logger.Warn("Snapshot root is not a directory",
			zap.String("root", cfg.Snapshot.Root),
		)
	}

	// Initialize resolvers; only the image root gets the
	// case-insensitive fallback
	site := resolver.New(cfg.Snapshot.Root, resolver.ScopeSite).
		WithMetrics(metrics)
	images := resolver.New(paths.ImageRoot(cfg.Snapshot.Root), resolver.ScopeImages).
		WithCaseFallback().
		WithMetrics(metrics)

	snapshotMgr := snapshot.NewManager(cfg.Snapshot.Root).WithMetrics(metrics)
	if !snapshotMgr.HasIndex() {
		logger.Warn("Snapshot root has no index page",
			zap.String("root", cfg.Snapshot.Root),
		)
	}

	// Prime the inventory gauges so /metrics is meaningful before the
	// first health probe
	logger.Info("Scanning snapshot...")
	ctx, cancel := context.WithTimeout(context.Background(), inventoryTimeout)
	defer cancel()
	if stats, err := snapshotMgr.Stats(ctx); err != nil {
		logger.Warn("Failed to scan snapshot", zap.Error(err))
	} else {
		logger.Info("Snapshot scanned",
			zap.Int("files", stats.Files),
			zap.Int("images", stats.Images),
			zap.String("size", stats.TotalSize),
		)
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	if cfg.Compression.Enabled {
		router.Use(middleware.Compression(middleware.CompressionConfig{
			MinSize: cfg.Compression.MinSize,
			Level:   cfg.Compression.Level,
		}))
	}

	// Create handlers
	handlers := apihttp.NewHandlers(
		site,
		images,
		snapshotMgr,
		content.NewDetector(),
		utils.NewETagger(nil),
		metrics,
		logger.Logger,
	)

	// Register routes
	router.GET("/", handlers.Root)
	router.HEAD("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/images_scraped/*filepath", handlers.ServeImage)
	router.HEAD("/images_scraped/*filepath", handlers.ServeImage)

	// Every unmatched path is a snapshot file. A catch-all route would
	// collide with "/" in gin's tree, so file serving hangs off NoRoute.
	router.NoRoute(handlers.ServeFile)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		snapshot: snapshotMgr,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Serving snapshot",
		zap.String("addr", addr),
		zap.String("root", s.snapshot.Root()),
	)
	return s.router.Run(addr)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// Sync logger before exit
	s.logger.Sync()

	return nil
}
