package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/pompeii/internal/config"
	"github.com/jwebster45206/pompeii/internal/handlers"
	"github.com/jwebster45206/pompeii/internal/logger"
	"github.com/jwebster45206/pompeii/internal/middleware"
	"github.com/jwebster45206/pompeii/internal/storage"
	"github.com/jwebster45206/pompeii/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log, closeLog, err := logger.Setup(cfg)
	if err != nil {
		panic(err)
	}
	defer closeLog()

	log.Info("Starting Pompeii API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage", cfg.Storage,
		"session_ttl", cfg.SessionTTL)

	if err := world.Check(); err != nil {
		log.Error("World data is inconsistent", "error", err)
		os.Exit(1)
	}

	var store storage.Storage
	switch cfg.Storage {
	case config.StorageMemory:
		store = storage.NewMockStorage()
		log.Warn("Using in-memory session storage; sessions are lost on restart")
	default:
		redisStore, err := storage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
		if err != nil {
			log.Error("Failed to configure Redis storage", "error", err)
			os.Exit(1)
		}
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err = redisStore.WaitForConnection(storageCtx, 30, 2*time.Second)
		storageCancel()
		if err != nil {
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
		store = redisStore
	}
	log.Info("Storage connection established successfully")

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(log, store)
	mux.Handle("/v1/session", sessionHandler)
	mux.Handle("/v1/session/", sessionHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
