package main

import (
	"log"
	"os"

	"slotfinder-backend/internal/categories"
	"slotfinder-backend/internal/config"
	"slotfinder-backend/internal/database"
	"slotfinder-backend/internal/locator"
	"slotfinder-backend/internal/logger"
	"slotfinder-backend/internal/server"
	"slotfinder-backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	var store storage.Store
	if cfg.DemoMode {
		ms := storage.NewMemoryStore(cfg.Limits(), categories.InferCategoryID)
		if cfg.DemoStatePath != "" {
			if err := ms.LoadSnapshot(cfg.DemoStatePath); err != nil && !os.IsNotExist(err) {
				zl.Warn("demo snapshot not loaded", zap.Error(err))
			}
		}
		ms.Seed()
		store = ms
		zl.Info("demo store ready", zap.String("snapshot", cfg.DemoStatePath))
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			zl.Fatal("database init failed", zap.Error(err))
		}
		store = storage.NewGormStore(db, cfg.Limits(), categories.InferCategoryID)
		zl.Info("database connected")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		zl.Info("rate limiting enabled", zap.String("redis", cfg.RedisAddr))
	}

	mover := locator.NewMover(store, zl)
	app := server.New(cfg, store, mover, zl, redisClient)

	zl.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
