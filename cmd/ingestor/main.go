package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/retailops/locator/internal/pkg/config"
	"github.com/retailops/locator/internal/pkg/database"
	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/internal/pkg/nsq"
	"github.com/retailops/locator/services/ingestor"
	"github.com/retailops/locator/services/ingestor/handler"
	"github.com/retailops/locator/services/ingestor/source"
	"github.com/retailops/locator/services/ingestor/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to .env file")
	filePath := flag.String("file", "", "local CSV file to ingest once and exit")
	table := flag.String("table", "stores", "table the file backs: stores or zips")
	replay := flag.String("replay", "", "publish a file event for the named object and exit")
	flag.Parse()

	configs := config.InitConfig(*configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger.SetGlobalLogger(zapLogger)

	// Replay mode: re-announce an object so event-mode workers re-ingest it
	if *replay != "" {
		runReplay(configs, *replay)
		return
	}

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	ingestUC := usecase.NewIngestUC(redisClient)

	// One-shot mode: ingest a local file and exit
	if *filePath != "" {
		runOnce(ingestUC, *filePath, *table)
		return
	}

	// Event mode: re-ingest whenever a source object changes
	objectSource, err := source.NewObjectSource(configs.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize object storage source", logger.Err(err))
	}

	eventHandler := handler.NewEventHandler(configs, ingestUC, objectSource)
	if err := eventHandler.InitConsumers(); err != nil {
		logger.Fatal("Failed to initialize event consumers", logger.Err(err))
	}
	defer eventHandler.Stop()

	logger.Info("Ingestor listening for file events",
		logger.String("topic", configs.NSQ.Topic),
		logger.String("bucket", configs.Storage.Bucket))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", logger.String("signal", sig.String()))
}

func runReplay(configs *models.Config, object string) {
	producer, err := nsq.NewProducer(configs.NSQ.Address)
	if err != nil {
		logger.Fatal("Failed to create NSQ producer", logger.Err(err))
	}
	defer producer.Stop()

	event := handler.FileEvent{Bucket: configs.Storage.Bucket, Name: object}
	if err := producer.Publish(configs.NSQ.Topic, event); err != nil {
		logger.Fatal("Failed to publish file event", logger.Err(err))
	}

	logger.Info("Published file event",
		logger.String("topic", configs.NSQ.Topic),
		logger.String("object", object))
}

func runOnce(ingestUC ingestor.IngestUseCase, filePath, table string) {
	ctx := context.Background()

	r, err := source.NewFileSource().Fetch(ctx, "", filePath)
	if err != nil {
		logger.Fatal("Failed to open source file", logger.Err(err))
	}
	defer r.Close()

	var summary *ingestor.Summary
	switch table {
	case "stores":
		summary, err = ingestUC.IngestStores(ctx, r)
	case "zips":
		summary, err = ingestUC.IngestZips(ctx, r)
	default:
		logger.Fatal("Unknown table", logger.String("table", table))
	}
	if err != nil {
		logger.Fatal("Ingestion failed", logger.String("file", filePath), logger.Err(err))
	}

	logger.Info("Ingestion finished",
		logger.String("file", filePath),
		logger.String("table", table),
		logger.Int("records", summary.Records),
		logger.Int("rows_skipped", summary.RowsSkipped),
		logger.Int("write_errors", summary.WriteErrors))
}
