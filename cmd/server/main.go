package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"branchwrite/internal/config"
	"branchwrite/internal/handler"
	"branchwrite/internal/middleware"
	"branchwrite/internal/repository/filestore"
	serviceDocsys "branchwrite/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" || cfg.Debug {
		logLevel = slog.LevelDebug
	}

	// Resolve the storage root before logging so log files can live under it
	paths, err := filestore.NewPaths(cfg.HomeDir)
	if err != nil {
		log.Fatalf("Failed to resolve storage root: %v", err)
	}
	logDir := cfg.LogDir
	if logDir == "" {
		logDir = paths.LogDir()
	}

	logFile, err := config.SetupLogFile(logDir, cfg.LogMaxFiles)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stdout, logFile), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Open the storage root
	repoConfig, err := filestore.NewRepositoryConfig(paths.Root, logger)
	if err != nil {
		log.Fatalf("Failed to open storage root: %v", err)
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"root", repoConfig.Paths.Root,
		"log_dir", logDir,
	)

	// Create repositories and services
	repos := filestore.NewRepositories(repoConfig)
	services := serviceDocsys.SetupServices(repos.Projects, repos.Books, repos.Documents, repos.TxManager, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(services.Projects, logger)
	bookHandler := handler.NewBookHandler(services.Books, logger)
	docHandler := handler.NewDocumentHandler(services.Documents, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, projectHandler, bookHandler, docHandler)

	// Build middleware chain
	// Order: CORS → RequestLog → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	// CORS - outermost so OPTIONS pre-flight requests never reach the routes
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. Bound to loopback: the store is single-user and local.
	server := &http.Server{
		Addr:         "127.0.0.1:" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
