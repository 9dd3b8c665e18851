package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chenayan/InventoryTrackerSkill/internal/adapter/handler"
	"github.com/chenayan/InventoryTrackerSkill/internal/adapter/storage"
	"github.com/chenayan/InventoryTrackerSkill/internal/config"
	"github.com/chenayan/InventoryTrackerSkill/internal/core/service"
	"github.com/chenayan/InventoryTrackerSkill/internal/metrics"
	"github.com/chenayan/InventoryTrackerSkill/internal/port"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage: primary per config, in-process secondary behind it.
	store := storage.NewFailover(buildPrimary(cfg))
	if err := store.Connect(ctx); err != nil {
		// Deliberate availability-over-durability trade-off: keep serving
		// from memory rather than refusing to start.
		log.Printf("primary store unavailable, serving from memory: %v", err)
	} else {
		log.Printf("connected to %s store", cfg.StoreDriver)
	}

	inventory := service.NewInventoryService(store)

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(inventory, store)
	intentHandler := handler.NewIntentHandler(inventory)

	mux := http.NewServeMux()
	httpHandler.Register(mux)
	mux.Handle("/intent", intentHandler)
	mux.Handle("/metrics", metrics.Handler())

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on :%s (mode %s, backend %s)", cfg.Port, cfg.RunMode, store.CurrentBackend())
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Printf("store disconnect error: %v", err)
	}
	log.Println("store disconnected")
}

// buildPrimary picks the configured durable driver, or nil when no connection
// string is set so the failover store degrades instead of dialing nowhere.
func buildPrimary(cfg config.Config) port.DocumentStore {
	if cfg.ConnString() == "" {
		log.Printf("no %s connection configured", cfg.StoreDriver)
		return nil
	}

	switch cfg.StoreDriver {
	case config.DriverMySQL:
		return storage.NewMySQLAdapter(cfg.MySQLDSN)
	case config.DriverRedis:
		return storage.NewRedisAdapter(cfg.RedisAddr)
	default:
		return storage.NewMongoAdapter(cfg.MongoURI, cfg.MongoDB)
	}
}
