package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/retailops/locator/internal/pkg/config"
	"github.com/retailops/locator/internal/pkg/database"
	"github.com/retailops/locator/internal/pkg/health"
	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/middleware"
	"github.com/retailops/locator/internal/pkg/server"
	"github.com/retailops/locator/services/locator"
	"github.com/retailops/locator/services/locator/gateway"
	"github.com/retailops/locator/services/locator/handler"
	"github.com/retailops/locator/services/locator/repository"
	"github.com/retailops/locator/services/locator/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to .env file")
	flag.Parse()

	configs := config.InitConfig(*configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger.SetGlobalLogger(zapLogger)

	// Initialize Redis connection
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize repository, gateway, and use case. An empty store
	// catalog is unrecoverable at startup.
	ctx := context.Background()
	catalogRepo := repository.NewCatalogRepository(redisClient)
	matrixGW := gateway.NewMatrixGW(configs.Maps)

	locatorUC, err := usecase.NewLocatorUC(ctx, configs, catalogRepo, matrixGW)
	if err != nil {
		if errors.Is(err, locator.ErrEmptyCatalog) {
			logger.Fatal("No store locations in cache, run the ingestor first", logger.Err(err))
		}
		logger.Fatal("Failed to initialize locator", logger.Err(err))
	}

	reloadCtx, cancelReload := context.WithCancel(ctx)
	defer cancelReload()
	locatorUC.StartPeriodicReload(reloadCtx)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())

	locatorHandler := handler.NewHTTPHandler(locatorUC)
	locatorHandler.RegisterRoutes(e)
	health.RegisterHealthEndpoints(e, configs.App.Name, configs.App.Version,
		health.NewRedisHealthChecker(redisClient))

	logger.Info("Locator ready",
		logger.String("service", configs.App.Name),
		logger.Int("stores", locatorUC.SnapshotSize()))

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, configs.Server.Port, shutdownTimeout)
	if err := srv.Start(); err != nil {
		logger.Fatal("Server error", logger.Err(err))
	}
}
