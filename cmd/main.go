package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/recyclerewards/backend/docs"
	"github.com/recyclerewards/backend/internal/config"
	"github.com/recyclerewards/backend/internal/handlers"
	"github.com/recyclerewards/backend/internal/logger"
	"github.com/recyclerewards/backend/internal/middleware"
	"github.com/recyclerewards/backend/internal/models"
	"github.com/recyclerewards/backend/internal/repositories"
	"github.com/recyclerewards/backend/internal/scheduler"
	"github.com/recyclerewards/backend/internal/services"
	"github.com/recyclerewards/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Recycle Rewards API
// @version 1.0
// @description API for recycling submissions, points and rewards

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Recycle Rewards API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize storage
	mediaStorage := storage.NewLocalStorage(cfg.Media.BasePath, cfg.Media.BaseURL)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, appLogger)
	sessionRepo := repositories.NewSessionRepository(db)
	itemRepo := repositories.NewRecycleItemRepository(db, appLogger)
	rewardRepo := repositories.NewRewardRepository(db, appLogger)
	pickupRepo := repositories.NewPickupRepository(db)
	reportRepo := repositories.NewReportRepository(db, appLogger)

	// Initialize services
	sessionManager := services.NewSessionManager(sessionRepo, userRepo, cfg.Session.TTL, appLogger)
	authService := services.NewAuthService(userRepo, sessionManager, appLogger)
	profileService := services.NewProfileService(userRepo, mediaStorage, appLogger)
	ledger := services.NewLedger(itemRepo, rewardRepo, userRepo, mediaStorage, appLogger)
	itemService := services.NewItemService(itemRepo, mediaStorage, appLogger)
	pickupService := services.NewPickupService(pickupRepo)
	dashboardService := services.NewDashboardService(reportRepo, pickupRepo)
	adminService := services.NewAdminService(userRepo, itemRepo, pickupRepo, reportRepo, appLogger)

	// Create the bootstrap administrator
	if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		appLogger.Fatal("Failed to create administrator", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger, cfg.Session.TTL, cfg.Session.CookieSecure)
	profileHandler := handlers.NewProfileHandler(profileService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, appLogger)
	itemHandler := handlers.NewItemHandler(itemService, ledger, appLogger)
	rewardHandler := handlers.NewRewardHandler(ledger, appLogger)
	pickupHandler := handlers.NewPickupHandler(pickupService, appLogger)
	adminHandler := handlers.NewAdminHandler(adminService, ledger, appLogger)
	mediaHandler := handlers.NewMediaHandler(mediaStorage, appLogger)
	sessionCleaningHandler := handlers.NewSessionCleaningHandler(sessionManager, appLogger)

	// Initialize auth middleware
	sessionMiddleware := middleware.SessionMiddleware(sessionManager, appLogger)
	adminMiddleware := middleware.RoleMiddleware(models.RoleAdmin)
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(appLogger))
	r.Use(middleware.RecoveryMiddleware(appLogger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		authHandler.RegisterRoutes(r)
		mediaHandler.RegisterRoutes(r)

		// Session cleaning routes with API key middleware
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			sessionCleaningHandler.RegisterRoutes(r)
		})

		// Routes for signed-in users
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware)
			profileHandler.RegisterRoutes(r)
			dashboardHandler.RegisterRoutes(r)
			itemHandler.RegisterRoutes(r)
			rewardHandler.RegisterRoutes(r)
			pickupHandler.RegisterRoutes(r)
		})

		// Admin routes with role middleware
		r.Route("/admin", func(r chi.Router) {
			r.Use(sessionMiddleware)
			r.Use(adminMiddleware)
			adminHandler.RegisterRoutes(r)
			profileHandler.RegisterAdminRoutes(r)
		})
	})

	// Start the expired session reaper
	var reaper *scheduler.SessionReaper
	if cfg.Session.CleanupSchedule != "" {
		reaper, err = scheduler.NewSessionReaper(sessionManager, cfg.Session.CleanupSchedule, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create session reaper", zap.Error(err))
		}
		reaper.Start()
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	if reaper != nil {
		reaper.Stop()
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
