package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/mail"
	"portfolio/internal/middleware"
	"portfolio/internal/service"
	"portfolio/internal/store"

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
	)

	if cfg.JWTSecret == "fallback-secret-key" {
		logger.Warn("JWT_SECRET not set, using the insecure default - do not run this in production")
	}
	if cfg.AdminPassword == "admin123" {
		logger.Warn("ADMIN_PASSWORD not set, using the insecure default - do not run this in production")
	}

	// Token service: single admin identity, stateless verification
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPassword, logger)

	// Document store: blob backing if a token is configured, local file otherwise
	st := store.New(cfg, logger)

	// Services
	portfolioService := service.NewPortfolioService(st, logger)

	mailer, err := mail.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to configure mail relay: %v", err)
	}
	contactService := service.NewContactService(mailer, logger)

	// Handlers
	portfolioHandler := handler.NewPortfolioHandler(portfolioService, logger)
	loginHandler := handler.NewLoginHandler(tokens, logger)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", portfolioHandler.HealthCheck)

	// Public routes
	mux.HandleFunc("GET /api/portfolio", portfolioHandler.Public)
	mux.HandleFunc("POST /api/contact", contactHandler.Send)

	// Admin collection routes - the five CRUD resources share one handler
	handler.NewResourceHandler(portfolioService.Skills, logger).Register(mux)
	handler.NewResourceHandler(portfolioService.Projects, logger).Register(mux)
	handler.NewResourceHandler(portfolioService.Experiences, logger).Register(mux)
	handler.NewResourceHandler(portfolioService.Education, logger).Register(mux)
	handler.NewResourceHandler(portfolioService.Certifications, logger).Register(mux)

	// Remaining admin routes
	mux.HandleFunc("POST /api/admin/login", loginHandler.Login)
	mux.HandleFunc("POST /api/admin/upload", uploadHandler.Upload)
	mux.HandleFunc("GET /api/admin/personal-info", portfolioHandler.GetPersonalInfo)
	mux.HandleFunc("PUT /api/admin/personal-info", portfolioHandler.UpdatePersonalInfo)

	// Uploaded images are served as plain static files
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(tokens)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
