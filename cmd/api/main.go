// @title Tudman API
// @version 1.0
// @description Persian quiz generation and grading from a URL or a topic.
// @host localhost:5050
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tudman/internal/adapter"
	"tudman/internal/adapter/extractor"
	"tudman/internal/adapter/llm"
	"tudman/internal/cache"
	"tudman/internal/config"
	"tudman/internal/domain"
	"tudman/internal/handler"
	"tudman/internal/logger"
	"tudman/internal/server"
	"tudman/internal/service"
	"tudman/internal/validation"

	_ "tudman/cmd/api/docs"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// One client for the process; it holds no per-request state.
	chatClient, err := llm.NewDeepSeekClient(cfg.LLM, llm.WithHTTPClient(&http.Client{Timeout: 90 * time.Second}))
	if err != nil {
		appLogger.Fatal("Failed to create DeepSeek client", zap.Error(err))
	}
	appLogger.Info("DeepSeek client initialized",
		zap.String("base_url", cfg.LLM.BaseURL),
		zap.String("model", cfg.LLM.Model))

	// Redis is optional; without it free-response gradings are not cached.
	var cacheAdapter domain.Cache
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, evaluation cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}
	evaluationCache := service.NewEvaluationCacheService(cacheAdapter, cfg.Cache.EvaluationTTL)

	pageExtractor := extractor.NewReadabilityExtractor(&http.Client{Timeout: 30 * time.Second}, cfg.Extractor.UserAgent)

	// Initialize services
	quizService := service.NewQuizService(
		service.NewMaterialService(pageExtractor),
		service.NewQuizComposer(chatClient),
		validation.NewQuizValidator(),
		service.NewAnswerEvaluator(chatClient, evaluationCache),
		service.NewSummaryService(chatClient),
	)

	app := server.New(cfg.Server, handler.NewQuizHandler(quizService))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
