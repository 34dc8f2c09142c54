package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/retailops/locator/internal/pkg/constants"
	"github.com/retailops/locator/internal/pkg/database"
	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/services/ingestor"
)

// IngestUC implements the ingestor.IngestUseCase interface
type IngestUC struct {
	redisClient *database.RedisClient
}

// NewIngestUC creates a new ingestion use case
func NewIngestUC(redisClient *database.RedisClient) ingestor.IngestUseCase {
	return &IngestUC{
		redisClient: redisClient,
	}
}

// IngestStores streams the store table into the cache
func (uc *IngestUC) IngestStores(ctx context.Context, r io.Reader) (*ingestor.Summary, error) {
	return uc.ingest(ctx, r, constants.ColumnStoreNum, constants.KeyStore)
}

// IngestZips streams the postal-coordinate table into the cache
func (uc *IngestUC) IngestZips(ctx context.Context, r io.Reader) (*ingestor.Summary, error) {
	return uc.ingest(ctx, r, constants.ColumnZip, constants.KeyZip)
}

// ingest reads a CSV stream with a header row, groups rows by the grouping
// column and writes one cache record per group. All columns of a group are
// buffered before the record is written, so input ordering does not matter;
// repeated grouping values merge into the same record, later values winning.
// Individual record writes are best-effort: a failed write is logged and
// counted, and the run continues.
func (uc *IngestUC) ingest(ctx context.Context, r io.Reader, groupColumn, keyFormat string) (*ingestor.Summary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	groupIdx := -1
	for i, col := range header {
		if col == groupColumn {
			groupIdx = i
			break
		}
	}
	if groupIdx == -1 {
		return nil, fmt.Errorf("grouping column %q not present in header", groupColumn)
	}

	summary := &ingestor.Summary{}

	// Buffer groups in first-seen order before writing
	var order []string
	records := make(map[string]map[string]interface{})

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				summary.RowsSkipped++
				logger.Warn("Skipping malformed row", logger.Int("line", parseErr.Line))
				continue
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		groupVal := row[groupIdx]
		if groupVal == "" {
			summary.RowsSkipped++
			continue
		}

		fields, ok := records[groupVal]
		if !ok {
			fields = make(map[string]interface{}, len(header)-1)
			records[groupVal] = fields
			order = append(order, groupVal)
		}
		for i, col := range header {
			if i == groupIdx {
				continue
			}
			fields[col] = row[i]
		}
	}

	for _, groupVal := range order {
		key := fmt.Sprintf(keyFormat, groupVal)
		if err := uc.redisClient.HMSet(ctx, key, records[groupVal]); err != nil {
			summary.WriteErrors++
			logger.Error("Failed to write cache record",
				logger.String("key", key),
				logger.Err(err))
			continue
		}
		summary.Records++
	}

	logger.Info("Ingestion complete",
		logger.String("group_column", groupColumn),
		logger.Int("records", summary.Records),
		logger.Int("rows_skipped", summary.RowsSkipped),
		logger.Int("write_errors", summary.WriteErrors))

	return summary, nil
}
