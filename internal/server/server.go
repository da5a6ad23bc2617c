package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/metrics"
	"catalog/internal/middlewares"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

type Server struct {
	port            int
	httpServer      *http.Server
	db              database.Service
	health          handlers.HealthChecker
	categoryService services.CategoryService
	vendorService   services.VendorService
	registry        *prometheus.Registry
	limiter         *middlewares.RateLimiter
	allowedOrigins  []string
	shutdownTimeout time.Duration
	background      context.Context
	stopBackground  context.CancelFunc
}

type memoryHealth struct{}

func (memoryHealth) Health() map[string]string {
	return map[string]string{"message": "It's healthy", "store": config.StoreMemory}
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var (
		db           database.Service
		health       handlers.HealthChecker
		categoryRepo repositories.CategoryRepository
		vendorRepo   repositories.VendorRepository
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store, data will not survive a restart")
		health = memoryHealth{}
		categoryRepo = repositories.NewInMemoryCategoryRepository()
		vendorRepo = repositories.NewInMemoryVendorRepository()
	default:
		var err error
		db, err = database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		health = db
		categoryRepo = repositories.NewCategoryRepository(db)
		vendorRepo = repositories.NewVendorRepository(db)
	}

	if cfg.SeedData {
		if err := services.NewBootstrapService(categoryRepo, vendorRepo).Seed(ctx); err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	background, stopBackground := context.WithCancel(context.Background())

	s := &Server{
		port:            cfg.Port,
		db:              db,
		health:          health,
		categoryService: services.NewCategoryService(categoryRepo),
		vendorService:   services.NewVendorService(vendorRepo),
		registry:        registry,
		limiter:         middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		allowedOrigins:  cfg.AllowedOrigins,
		shutdownTimeout: cfg.ShutdownTimeout,
		background:      background,
		stopBackground:  stopBackground,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, nil
}

func (s *Server) Start() error {
	go s.limiter.CleanupVisitors(s.background)

	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	s.stopBackground()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection")
		}
	}

	log.Info().Msg("Server exiting")
	done <- true
}
