package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retailops/locator/services/ingestor"
)

// FileSource reads catalog files from the local filesystem. It is used by
// the one-shot ingestion mode; the bucket argument is ignored.
type FileSource struct{}

// NewFileSource creates a local filesystem source
func NewFileSource() ingestor.SourceFetcher {
	return &FileSource{}
}

// Fetch opens the named file for streaming
func (s *FileSource) Fetch(_ context.Context, _ string, object string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(object))
	if err != nil {
		return nil, fmt.Errorf("failed to open source file %s: %w", object, err)
	}
	return f, nil
}
