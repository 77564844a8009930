package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxpop/interview/internal/config"
	"voxpop/interview/internal/feedback"
	"voxpop/interview/internal/handlers"
	"voxpop/interview/internal/jobs"
	"voxpop/interview/internal/llm"
	_ "voxpop/interview/internal/llm/gemini"
	"voxpop/interview/internal/metrics"
	"voxpop/interview/internal/prompts"
	"voxpop/interview/internal/report"
	"voxpop/interview/internal/routers"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, chatHandler *handlers.ChatHandler, reportHandler *handlers.ReportHandler, feedbackHandler *handlers.FeedbackHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, chatHandler, reportHandler, feedbackHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Bool("store_enabled", cfg.StoreEnabled))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	// Durable store is optional; without it the service hands out mock
	// session ids and skips persistence.
	var db *gorm.DB
	var interviewStore store.Store
	if cfg.StoreEnabled {
		db, err = initDatabase()
		if err != nil {
			logger.Error("Failed to initialize database, running with mock sessions only", zap.Error(err))
		} else {
			interviewStore = store.New(db)
		}
	} else {
		logger.Info("Interview store disabled, running with mock sessions only")
	}

	sessionManager := session.NewManager(interviewStore, logger)
	reportGenerator := report.NewGenerator(aiProvider, promptManager, logger)

	interviewHandler := handlers.NewInterviewHandler(sessionManager, logger)
	chatHandler := handlers.NewChatHandler(aiProvider, promptManager, sessionManager, logger)
	reportHandler := handlers.NewReportHandler(reportGenerator, sessionManager, aiProvider.GetProviderName(), logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, sessionManager, cfg)

	// Feedback system needs the database; reports still work without it,
	// they just can't be rated.
	var feedbackManager *feedback.FeedbackManager
	var exporterJob *jobs.FeedbackExporterJob
	if db != nil {
		cacheTTL, _ := time.ParseDuration(getEnv("FEEDBACK_CACHE_TTL", "15m"))
		feedbackManager = feedback.NewFeedbackManager(db, cacheTTL)
		reportHandler.SetFeedbackManager(feedbackManager)

		exporterConfig := &jobs.ExporterConfig{
			Schedule:      cfg.ExportSchedule,
			ExportDir:     cfg.ExportDir,
			ExportEnabled: cfg.ExportEnabled,
		}
		exporterJob = jobs.NewFeedbackExporterJob(feedbackManager, interviewStore, exporterConfig)
		if exporterConfig.ExportEnabled {
			if err := exporterJob.Start(); err != nil {
				logger.Error("Failed to start feedback exporter job", zap.Error(err))
			} else {
				logger.Info("Feedback exporter job started", zap.String("schedule", exporterConfig.Schedule))
			}
		}

		logger.Info("Feedback system initialized successfully")
	}
	feedbackHandler := handlers.NewFeedbackHandler(feedbackManager)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://voxpop.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware("interview"))

	registerRoutes(router, interviewHandler, chatHandler, reportHandler, feedbackHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if exporterJob != nil {
		exporterJob.Stop()
		logger.Info("Feedback exporter job stopped")
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
