package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newshub/news-service/internal/platform/seeder"
)

type App struct {
	server  *http.Server
	config  Config
	seeders *seeder.Orchestrator
}

func NewApp(server *http.Server, config Config, seeders *seeder.Orchestrator) *App {
	return &App{
		server:  server,
		config:  config,
		seeders: seeders,
	}
}

// Run prepares the database, starts the server and handles graceful shutdown
func (a *App) Run() error {
	if err := a.seeders.RunAll(context.Background()); err != nil {
		return fmt.Errorf("database preparation failed: %w", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down server...")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
