package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheLMNTRIX/Sangath/config"
	deliveryHttp "github.com/TheLMNTRIX/Sangath/internal/delivery/http"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/handler"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/middleware"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/blob"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/cache"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/database"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/identity"
	"github.com/TheLMNTRIX/Sangath/internal/repository"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/idgen"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Store       docstore.Store
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}
	ctx := context.Background()

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize identity provider
	identityClient, err := identity.NewFirebaseClient(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}
	logrus.Info("Identity provider initialized successfully")

	// Initialize document store
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}
	app.Store = store
	logrus.Infof("Document store initialized successfully (driver: %s)", cfg.Store.Driver)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize blob storage
	blobStore, err := blob.NewS3Store(ctx, blob.S3Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}
	logrus.Info("Blob storage initialized successfully")

	// Initialize all layers
	server := initializeServer(cfg, identityClient, store, redisClient, blobStore)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// newStore selects the document store backend from configuration.
func newStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			return nil, err
		}
		return docstore.NewPostgresStore(db)
	case "firestore":
		return docstore.NewFirestoreStore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	identityClient identity.Client,
	store docstore.Store,
	redisClient *redis.Client,
	blobStore blob.Store,
) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize token exchanger
	exchanger := identity.NewRESTTokenExchanger(cfg.Firebase.WebAPIKey)

	// Initialize id allocator
	allocator := idgen.New(store)

	// Initialize repositories
	userRepo := repository.NewUserRepository(store, allocator)
	patientRepo := repository.NewPatientRepository(store, allocator)
	sessionRepo := repository.NewSessionRepository(store)
	ticketRepo := repository.NewResetTicketRepository(redisClient)

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, identityClient, exchanger, userRepo, ticketRepo, cfg.Reset.CodeTTL)
	userUsecase := usecase.NewUserUsecase(log, identityClient, userRepo, patientRepo)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, userRepo, sessionRepo)
	sessionUsecase := usecase.NewSessionUsecase(log, sessionRepo, patientRepo, blobStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	sessionHandler := handler.NewSessionHandler(sessionUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(identityClient, userRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, userHandler, patientHandler, sessionHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (document store, redis, etc.)
func (app *App) Close() {
	if closer, ok := app.Store.(interface{ Close() error }); ok {
		closer.Close()
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
