package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iiviie/gearheads/internal/config"
	"github.com/iiviie/gearheads/internal/geo"
	"github.com/iiviie/gearheads/internal/log"
	"github.com/iiviie/gearheads/internal/models"
	"github.com/iiviie/gearheads/internal/server"
	"github.com/iiviie/gearheads/internal/storage"
	"github.com/iiviie/gearheads/internal/store"
	"github.com/iiviie/gearheads/internal/views"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	backend, err := connectStorage(cfg.Storage)
	if err != nil {
		log.Error.Fatalf("Failed to initialize storage: %v", err)
	}
	if backend != nil {
		defer backend.Close()
	}

	st := store.New(store.NewAdapter(backend, cfg.Storage.Key))

	// Initialize place search
	geocoder, err := geo.NewGeocoder(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.Language,
		cfg.Geocoder.UserAgent,
		cfg.Geocoder.Limit,
	)
	if err != nil {
		log.Error.Fatalf("Failed to initialize geocoder: %v", err)
	}

	srv := server.New(st, geocoder, server.Options{
		Debounce:    cfg.Geocoder.Debounce,
		MinQueryLen: cfg.Geocoder.MinQuery,
		Map: views.MapDefaults{
			Center: models.Location{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
			Zoom:   cfg.Map.Zoom,
		},
	})
	defer srv.Close()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info.Printf("Starting server on %s", addr)
		log.Info.Printf("Storage backend: %s", cfg.Storage.Type)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error.Printf("Shutdown: %v", err)
	}
}

// connectStorage opens the configured backend. An unreachable backend is not
// fatal: the app runs on unsaved seed data instead.
func connectStorage(cfg config.StorageConfig) (storage.Storage, error) {
	backend, err := openStorage(cfg)
	if errors.Is(err, storage.ErrUnavailable) {
		log.Warn.Printf("%v; changes will not be saved", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return backend, nil
}

// openStorage builds the configured key-value backend. The "none" type
// returns a nil backend: nothing is persisted.
func openStorage(cfg config.StorageConfig) (storage.Storage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = storage.DefaultTimeout
	}

	switch cfg.Type {
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return storage.NewSQLiteStorage(cfg.Path)
	case "redis":
		return storage.NewRedisStorage(cfg.RedisAddr, timeout)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return storage.NewPostgresStorage(ctx, cfg.PostgresDSN, timeout)
	case "mongo":
		return storage.NewMongoStorage(context.Background(), cfg.MongoURI, cfg.MongoDatabase, timeout)
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
