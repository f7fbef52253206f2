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

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/routes"
	"storefront/internal/storefront"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel))

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		log.Fatalln("❌ Could not open store:", err)
	}
	defer closeRepo()

	data, err := loadCatalog(cfg, appLogger)
	if err != nil {
		log.Fatalln("❌ Could not load catalog:", err)
	}

	opts := storefront.ConfigOptions(cfg)
	opts.Catalog = data
	opts.Repository = repo
	opts.Logger = appLogger

	engine, err := storefront.New(opts)
	if err != nil {
		log.Fatalln("❌ Invalid catalog:", err)
	}
	if err := engine.Init(context.Background()); err != nil {
		log.Fatalln("❌ Could not start storefront:", err)
	}
	defer engine.Dispose()

	router := gin.Default()
	routes.RegisterRoutes(router, handlers.NewHandler(engine, appLogger))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("🚀 Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("❌ Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("⚠️ Forced shutdown:", err)
	}
}

// openRepository elige el backend de persistencia según STORE_BACKEND
func openRepository(cfg *config.Config) (repository.KeyValueRepository, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "memory":
		log.Println("💾 Using in-memory store")
		return repository.NewMemoryRepository(), noop, nil

	case "file", "":
		repo, err := repository.NewFileRepository(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		log.Println("💾 Using file store at", cfg.DataDir)
		return repo, noop, nil

	case "mongo":
		client, err := database.Connect(cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		collection := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
		return repository.NewMongoRepository(collection), func() {
			_ = client.Disconnect(context.Background())
		}, nil

	case "redis":
		client, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisRepository(client, cfg.StorePrefix), func() {
			_ = client.Close()
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// loadCatalog usa CATALOG_FILE si está definido; si no, el catálogo de demo
func loadCatalog(cfg *config.Config, appLogger logger.Logger) (catalog.Data, error) {
	if cfg.CatalogFile == "" {
		return catalog.SeedData(time.Now()), nil
	}
	return catalog.LoadFile(cfg.CatalogFile, appLogger)
}
