package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmetic-platform-dataset/config"
	deliveryHttp "cosmetic-platform-dataset/internal/delivery/http"
	"cosmetic-platform-dataset/internal/delivery/http/handler"
	"cosmetic-platform-dataset/internal/delivery/http/middleware"
	"cosmetic-platform-dataset/internal/infrastructure/cache"
	"cosmetic-platform-dataset/internal/infrastructure/database"
	"cosmetic-platform-dataset/internal/integrity"
	"cosmetic-platform-dataset/internal/repository"
	"cosmetic-platform-dataset/internal/seed"
	"cosmetic-platform-dataset/internal/service"
	"cosmetic-platform-dataset/internal/usecase"
	"cosmetic-platform-dataset/pkg/jwt"
	"cosmetic-platform-dataset/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// DBMode says whether a command needs the database
type DBMode int

const (
	// DBNone never connects
	DBNone DBMode = iota
	// DBOptional connects when a connection is configured
	DBOptional
	// DBRequired fails when no connection is configured
	DBRequired
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger
	Dataset     *seed.Dataset
	JWT         *jwt.JWTService

	Catalog  usecase.CatalogUsecase
	Import   usecase.ImportUsecase
	Verify   usecase.VerifyUsecase
	Policies usecase.PolicyUsecase
	Export   usecase.ExportUsecase
	AuditLog usecase.AuditLogUsecase
}

// New creates a new App instance. Logs go to out.
func New(ctx context.Context, mode DBMode, out io.Writer) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel, out)
	app.Log.Debug("Configuration loaded successfully")

	dataset, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	app.Dataset = dataset

	// Initialize database
	if mode == DBRequired || (mode == DBOptional && cfg.DB.Configured()) {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, database.Classify(err)
		}
		app.DB = db
	}

	// Initialize Redis
	if mode != DBNone {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.RedisClient = redisClient
	}

	app.initializeUsecases()
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string, out io.Writer) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func (app *App) initializeUsecases() {
	cfg := app.Config

	// Initialize JWT service
	app.JWT = jwt.NewJWTService(cfg.JWT)

	// Initialize validator and checker
	checker := integrity.NewChecker(validator.NewValidator())

	// Initialize repositories
	seedRepo := repository.NewSeedRepository()
	sequenceRepo := repository.NewSequenceRepository()
	integrityRepo := repository.NewIntegrityRepository()
	policyRepo := repository.NewPolicyRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(app.Log, auditLogRepo)
	importLock := service.NewImportLock(app.RedisClient, cfg.Import.LockTTL, app.Log)

	var authShim func() error
	if cfg.DB.AuthShim && app.DB != nil {
		authShim = func() error { return database.MigrateAuthShim(app.DB, app.Log) }
	}

	// Initialize usecases
	app.Catalog = usecase.NewCatalogUsecase(app.Dataset)
	app.Import = usecase.NewImportUsecase(app.DB, app.Log, cfg.Import, app.Dataset, checker, importLock, authShim,
		seedRepo, sequenceRepo, policyRepo, auditLogRepo, auditService)
	app.Verify = usecase.NewVerifyUsecase(app.DB, app.Log, app.Dataset, checker, cfg.Import.VerifyConcurrency,
		integrityRepo, sequenceRepo)
	app.Policies = usecase.NewPolicyUsecase(app.DB, app.Log, policyRepo, auditService)
	app.Export = usecase.NewExportUsecase(app.Log, app.Dataset, afero.NewOsFs())
	app.AuditLog = usecase.NewAuditLogUsecase(app.DB, app.Log, auditLogRepo)
}

// NewServer creates and configures the HTTP server
func (app *App) NewServer() *http.Server {
	// Initialize handlers
	healthHandler := handler.NewHealthHandler(app.DB)
	tableHandler := handler.NewTableHandler(app.Catalog)
	reportHandler := handler.NewReportHandler(app.Verify)
	policyHandler := handler.NewPolicyHandler(app.Policies, validator.NewValidator())
	auditLogHandler := handler.NewAuditLogHandler(app.AuditLog)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(app.JWT)
	corsMiddleware := middleware.NewCORSMiddleware(app.Config.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(healthHandler, tableHandler, reportHandler, policyHandler, auditLogHandler,
		authMiddleware, corsMiddleware)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app.Server
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	if app.Server == nil {
		app.NewServer()
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the
// server fails to start.
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
