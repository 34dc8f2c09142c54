package ingestor

import (
	"context"
	"io"
)

// Summary reports the outcome of one ingestion run
type Summary struct {
	Records     int `json:"records"`      // cache records written
	RowsSkipped int `json:"rows_skipped"` // rows without a usable grouping value
	WriteErrors int `json:"write_errors"` // best-effort field writes that failed
}

// IngestUseCase defines the interface for catalog ingestion
type IngestUseCase interface {
	// IngestStores streams the store table into the cache, one record per
	// storeNum group
	IngestStores(ctx context.Context, r io.Reader) (*Summary, error)

	// IngestZips streams the postal-coordinate table into the cache, one
	// record per zip group
	IngestZips(ctx context.Context, r io.Reader) (*Summary, error)
}
