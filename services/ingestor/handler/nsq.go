package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/internal/pkg/nsq"
	"github.com/retailops/locator/services/ingestor"
)

// FileEvent is the payload published when a catalog source file changes
type FileEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// EventHandler consumes file-change events and re-ingests the named table
type EventHandler struct {
	cfg      *models.Config
	ingestUC ingestor.IngestUseCase
	source   ingestor.SourceFetcher
	consumer *nsq.Consumer
}

// NewEventHandler creates an ingestion event handler
func NewEventHandler(
	cfg *models.Config,
	ingestUC ingestor.IngestUseCase,
	source ingestor.SourceFetcher,
) *EventHandler {
	return &EventHandler{
		cfg:      cfg,
		ingestUC: ingestUC,
		source:   source,
	}
}

// InitConsumers initializes the NSQ consumer for file-change events
func (h *EventHandler) InitConsumers() error {
	consumer, err := nsq.NewConsumer(
		h.cfg.NSQ.Topic,
		h.cfg.NSQ.Channel,
		h.cfg.NSQ.Address,
		h.handleFileEvent,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize file event consumer: %w", err)
	}

	if h.cfg.NSQ.LookupAddress != "" {
		if err := consumer.ConnectToLookupd([]string{h.cfg.NSQ.LookupAddress}); err != nil {
			return fmt.Errorf("failed to connect to lookupd: %w", err)
		}
	}

	h.consumer = consumer
	return nil
}

// Stop gracefully stops the consumer
func (h *EventHandler) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
	}
}

// handleFileEvent processes a file-change event and re-ingests the table
// the object backs. Events for objects we do not recognize are ignored.
func (h *EventHandler) handleFileEvent(msg []byte) error {
	var event FileEvent
	if err := nsq.UnmarshalMessage(msg, &event); err != nil {
		logger.Error("Failed to unmarshal file event", logger.Err(err))
		return err
	}

	logger.Info("Received file event",
		logger.String("bucket", event.Bucket),
		logger.String("object", event.Name))

	ctx := context.Background()

	switch event.Name {
	case h.cfg.Storage.StoreFile:
		return h.reingest(ctx, event, h.ingestUC.IngestStores)
	case h.cfg.Storage.ZipFile:
		return h.reingest(ctx, event, h.ingestUC.IngestZips)
	default:
		logger.Warn("Ignoring event for unknown object",
			logger.String("object", event.Name))
		return nil
	}
}

type ingestFunc func(ctx context.Context, r io.Reader) (*ingestor.Summary, error)

func (h *EventHandler) reingest(ctx context.Context, event FileEvent, ingest ingestFunc) error {
	r, err := h.source.Fetch(ctx, event.Bucket, event.Name)
	if err != nil {
		logger.Error("Failed to fetch source object",
			logger.String("object", event.Name),
			logger.Err(err))
		return err
	}
	defer r.Close()

	summary, err := ingest(ctx, r)
	if err != nil {
		logger.Error("Failed to ingest source object",
			logger.String("object", event.Name),
			logger.Err(err))
		return err
	}

	logger.Info("Re-ingested catalog table",
		logger.String("object", event.Name),
		logger.Int("records", summary.Records),
		logger.Int("rows_skipped", summary.RowsSkipped),
		logger.Int("write_errors", summary.WriteErrors))
	return nil
}
