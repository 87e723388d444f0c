package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"userfiles/internal/auth"
	"userfiles/internal/config"
	"userfiles/internal/handler"
	"userfiles/internal/httputil"
	"userfiles/internal/middleware"
	"userfiles/internal/repository/postgres"
	"userfiles/internal/service"
	"userfiles/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	policy, err := config.LoadPolicy()
	if err != nil {
		log.Fatalf("Invalid policy: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_root", cfg.StorageRoot,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	clientRepo := postgres.NewClientRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	linkRepo := postgres.NewFolderLinkRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// File storage root
	root := storage.NewRoot(cfg.StorageRoot)

	// Token issuer doubles as the verifier behind the auth middleware
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// Create services
	authService := service.NewAuthService(userRepo, txManager, tokens, logger)
	clientService := service.NewClientService(clientRepo, txManager, logger)
	folderService := service.NewFolderService(folderRepo, txManager, root, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, txManager, root, policy.Upload.MaxBytes, logger)
	shareService := service.NewShareService(linkRepo, folderRepo, fileRepo, fileService, cfg.BaseURL, policy.ShareLinks.TTL, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	clientHandler := handler.NewClientHandler(clientService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("GET /api/profile", authHandler.Profile)

	// Client routes
	mux.HandleFunc("GET /api/clients", clientHandler.List)
	mux.HandleFunc("POST /api/clients", clientHandler.Create)
	mux.HandleFunc("GET /api/clients/{id}", clientHandler.Get)
	mux.HandleFunc("PUT /api/clients/{id}", clientHandler.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", clientHandler.Delete)

	// Folder routes
	mux.HandleFunc("GET /api/clients/{clientId}/folders", folderHandler.List)
	mux.HandleFunc("POST /api/clients/{clientId}/folders", folderHandler.Create)
	mux.HandleFunc("PUT /api/clients/{clientId}/folders/{folderId}", folderHandler.Rename)
	mux.HandleFunc("DELETE /api/clients/{clientId}/folders/{folderId}", folderHandler.Delete)

	// File routes
	mux.HandleFunc("GET /api/clients/{clientId}/folders/{folderId}/files", fileHandler.List)
	mux.HandleFunc("POST /api/clients/{clientId}/folders/{folderId}/files", fileHandler.Upload)
	mux.HandleFunc("GET /api/clients/{clientId}/folders/{folderId}/files/{fileId}", fileHandler.Download)
	mux.HandleFunc("PUT /api/clients/{clientId}/folders/{folderId}/files/{fileId}", fileHandler.Rename)
	mux.HandleFunc("DELETE /api/clients/{clientId}/folders/{folderId}/files/{fileId}", fileHandler.Delete)

	// Share routes
	mux.HandleFunc("POST /api/clients/{clientId}/folders/{folderId}/share", shareHandler.Generate)
	mux.HandleFunc("GET /api/shared/folder/{code}", shareHandler.ListFiles)
	mux.HandleFunc("GET /api/shared/folder/{code}/files/{fileId}", shareHandler.Download)

	// Build middleware chain
	var srv http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Auth → Routes
	srv = middleware.Auth(tokens)(srv)
	srv = middleware.Recovery(logger)(srv)
	srv = middleware.RequestID()(srv)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	srv = corsHandler.Handler(srv)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
