package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/config"
	"github.com/simp-lee/svcadmin/internal/middleware"
	"github.com/simp-lee/svcadmin/internal/module/auth"
	"github.com/simp-lee/svcadmin/internal/module/booking"
	"github.com/simp-lee/svcadmin/internal/module/catalog"
	"github.com/simp-lee/svcadmin/internal/module/provider"
	"github.com/simp-lee/svcadmin/internal/module/report"
	"github.com/simp-lee/svcadmin/internal/module/review"
	"github.com/simp-lee/svcadmin/internal/module/settings"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

const (
	defaultServerTimeout = 30 * time.Second
	defaultTokenExpiry   = 24 * time.Hour
	shutdownTimeout      = 5 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database (migrating and seeding it when asked),
// repositories, services, handlers, middleware and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	if !cfg.Auth.Enabled {
		log.Warn("auth is disabled: the admin API accepts unauthenticated requests")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		closeDB(db)
	}()

	// 3. Migrate in debug mode or when demo data is requested.
	if cfg.Server.Mode == gin.DebugMode || cfg.Database.Seed {
		if err := config.Migrate(db, models...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}
	if cfg.Database.Seed {
		if err := seedDemoData(context.Background(), db, log.Logger); err != nil {
			return nil, err
		}
	}

	// 4. Engine, middleware and routes.
	engine, err := newEngine(cfg, db, log.Logger)
	if err != nil {
		return nil, err
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// newEngine builds the gin engine with middleware and every module's routes.
func newEngine(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*gin.Engine, error) {
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	handlers := []gin.HandlerFunc{
		middleware.Recovery(log),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: true,
		}),
		middleware.Logger(log),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	}
	if cfg.Server.RateLimit.Enabled {
		handlers = append(handlers, middleware.RateLimit(middleware.RateLimitConfig{
			RPS:   cfg.Server.RateLimit.RPS,
			Burst: cfg.Server.RateLimit.Burst,
		}))
	}
	engine.Use(handlers...)

	modules, apiMiddleware := buildModules(cfg, db, log)
	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:       modules,
		DB:            db,
		APIMiddleware: apiMiddleware,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}
	return engine, nil
}

// buildModules performs manual dependency injection:
// repository → service → handler → module.
func buildModules(cfg *config.Config, db *gorm.DB, log *slog.Logger) ([]Module, []gin.HandlerFunc) {
	var cacheOpts report.CacheOptions
	if cfg.Server.Cache.Enabled {
		cacheOpts = report.CacheOptions{
			TTL:     config.Duration(cfg.Server.Cache.TTL, 0),
			MaxSize: cfg.Server.Cache.MaxSize,
		}
	}

	modules := []Module{
		booking.NewModule(booking.NewBookingHandler(
			booking.NewBookingService(booking.NewBookingRepository(db), log))),
		provider.NewModule(provider.NewProviderHandler(
			provider.NewProviderService(provider.NewProviderRepository(db), log))),
		catalog.NewModule(catalog.NewServiceHandler(
			catalog.NewCatalogService(catalog.NewServiceRepository(db), log))),
		review.NewModule(review.NewReviewHandler(
			review.NewReviewService(review.NewReviewRepository(db), log))),
		settings.NewModule(settings.NewSettingsHandler(
			settings.NewSettingsService(settings.NewSettingsRepository(db), log))),
		report.NewModule(report.NewReportHandler(
			report.NewReportService(report.NewReportRepository(db), cacheOpts, log))),
	}

	if !cfg.Auth.Enabled {
		return modules, nil
	}

	expiry := config.Duration(cfg.Auth.TokenExpiry, defaultTokenExpiry)
	tokens := pkg.NewTokenManager(cfg.Auth.JWTSecret, expiry)
	modules = append(modules, auth.NewModule(auth.NewHandler(
		auth.NewService(tokens, auth.NewAdminRepository(db), expiry))))
	return modules, []gin.HandlerFunc{middleware.Auth(tokens, cfg.Auth.PublicPaths)}
}

func resolveCORSConfig(mode string, cfg config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	if cfg.MaxAge != "" {
		corsConfig.MaxAge = middleware.MaxAgeSeconds(cfg.MaxAge)
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials

	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
		return corsConfig
	}

	// In release mode, when no allowlist is configured, deny cross-origin requests.
	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Handler exposes the configured gin engine, e.g. for httptest servers.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Close releases the database connection and the logger without serving.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	closeDB(a.db)
	if a.logger != nil {
		return a.logger.Close()
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("database close error", slog.Any("error", err))
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and closes the database
// connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, config.Duration(a.cfg.Server.Timeout, defaultServerTimeout))

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		closeDB(a.db)
		log.Info("database connection closed")
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
