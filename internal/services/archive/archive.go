package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kalibre-teknik/backoffice/internal/config"
)

// Service mirrors generated report PDFs to object storage. The disk copy
// under the report storage dir remains the source of truth; archival is
// best effort and the caller only logs failures.
type Service struct {
	client *minio.Client
	bucket string
}

// NewService creates a new archive service
func NewService(cfg *config.Config) (*Service, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &Service{client: client, bucket: cfg.MinioBucket}, nil
}

// Store uploads one report PDF under a tenant-prefixed key
func (s *Service) Store(ctx context.Context, tenantID, filename string, data []byte) error {
	key := fmt.Sprintf("reports/%s/%s", tenantID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("failed to archive report %s: %w", key, err)
	}
	return nil
}

// Fetch retrieves an archived report, used when the disk copy is gone
func (s *Service) Fetch(ctx context.Context, tenantID, filename string) ([]byte, error) {
	key := fmt.Sprintf("reports/%s/%s", tenantID, filename)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get archived report %s: %w", key, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read archived report %s: %w", key, err)
	}
	return buf.Bytes(), nil
}
