package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendpause/internal/api"
	"spendpause/internal/api/handlers"
	"spendpause/internal/repository"
	"spendpause/internal/service"
	"spendpause/pkg/auth"
	"spendpause/pkg/config"
	"spendpause/pkg/logger"
	"spendpause/pkg/postgres"

	"go.uber.org/zap"
)

// @title SpendPause API
// @version 1.0
// @description Mindful-spending service: product analysis, pricing-manipulation detection, opportunity-cost projection and purchase cool-downs.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting SpendPause service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)
	coolDownRepo := repository.NewCoolDownRepository(db, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	profileService := service.NewProfileService(profileRepo, appLogger)
	coolDownService := service.NewCoolDownService(coolDownRepo, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	analysisService := service.NewAnalysisService(llmService, appLogger)
	evaluationService := service.NewEvaluationService(llmService, appLogger)
	traceService := service.NewTraceService(&cfg.Trace, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, profileService, evaluationService, traceService, appLogger)
	coolDownHandler := handlers.NewCoolDownHandler(coolDownService, profileService, appLogger)
	profileHandler := handlers.NewProfileHandler(profileService, appLogger)

	app := api.SetupRouter(authHandler, analysisHandler, coolDownHandler, profileHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
