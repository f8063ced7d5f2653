package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/accounts"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/config"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/db"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/export"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/mail"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/middleware"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/repository"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/spots"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	spotRepo := repository.NewParkingSpotRepository(conn.Pool)
	userRepo := repository.NewUserRepository(conn.Pool)

	// Create services
	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.TokenValidity)
	accountService := accounts.NewService(userRepo, tokens, mail.LogMailer{})
	spotService := spots.NewService(spotRepo)
	spotQueryService := spots.NewQueryService(spotRepo)
	exportService := export.NewService(spotRepo)

	// Register routes
	mux := http.NewServeMux()
	accounts.NewHTTPHandler(accountService).Register(mux)
	spots.NewHTTPHandler(spotService, spotQueryService).Register(mux)
	export.NewHTTPHandler(exportService).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Authorization", "Link", "X-Total-Count"},
	})

	authenticator := middleware.NewAuthenticator(tokens)
	handler := corsHandler.Handler(
		middleware.LoggingMiddleware(
			middleware.MetricsMiddleware(
				authenticator.Middleware(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting parking API server on %s", server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
