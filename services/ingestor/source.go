package ingestor

import (
	"context"
	"io"
)

// SourceFetcher defines the interface for fetching catalog source files
type SourceFetcher interface {
	// Fetch opens the named object for streaming. The caller closes it.
	Fetch(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}
