package source

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/services/ingestor"
)

// ObjectSource fetches catalog files from S3-compatible object storage
type ObjectSource struct {
	client *minio.Client
}

// NewObjectSource creates an object storage source from configuration
func NewObjectSource(cfg models.StorageConfig) (ingestor.SourceFetcher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &ObjectSource{client: client}, nil
}

// Fetch opens the named object for streaming
func (s *ObjectSource) Fetch(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s/%s: %w", bucket, object, err)
	}

	// GetObject is lazy; surface missing objects before handing the
	// stream to the CSV reader
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object %s/%s: %w", bucket, object, err)
	}

	return obj, nil
}
