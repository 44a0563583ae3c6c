package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"resume-extract/internal/api/routes"
	"resume-extract/internal/config"
	"resume-extract/internal/extractor"
	"resume-extract/internal/extractor/workers"
	"resume-extract/internal/llm"
	"resume-extract/internal/logging"
	"resume-extract/internal/parser"
	"resume-extract/pkg/utils"
)

func main() {
	// Load environment variables from .env if present
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Resume Extraction Service")

	// Redis cache is optional: without it every request hits the provider
	var redisClient *utils.RedisClient
	var cache llm.CacheStore
	if cfg.Redis.Enabled {
		redisClient = utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		err := redisClient.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("Redis unreachable, running without cache", map[string]interface{}{
				"error": err.Error(),
			})
			redisClient = nil
		} else {
			cache = redisClient
			logger.Info("Redis cache connected")
		}
	} else {
		logger.Info("Redis cache disabled by configuration")
	}

	// LLM manager with the rule-based parser as its degradation path
	llmManager := llm.NewManager(cfg, cache, parser.NewRuleParser())
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Worker pool running the extraction engine
	poolManager := workers.NewPoolManager(cfg, extractor.NewEngine(cfg))
	if err := poolManager.Initialize(); err != nil {
		logger.Fatal("Failed to start worker pool", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer poolManager.Shutdown()

	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, poolManager, llmManager, redisClient)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := poolManager.Shutdown(); err != nil {
			logger.Error("Error stopping worker pool", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis connection", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("HTTP server stopped", map[string]interface{}{"error": err.Error()})
	}
}
