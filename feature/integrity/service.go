package integrity

import (
	"context"
	"errors"

	"kb-admin/core/schema"
	"kb-admin/core/storage"
	"kb-admin/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when no object store is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	basePath string
	db       *gorm.DB
	schemas  []*schema.Schema
	logger   *zap.Logger
}

// NewService creates a new integrity service. client may be nil when documents are
// not kept in object storage.
func NewService(client storage.Client, bucket, basePath string, db *gorm.DB, schemas []*schema.Schema, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		basePath: basePath,
		db:       db,
		schemas:  schemas,
		logger:   logger,
	}
}

// Folders returns the upload folder of every table.
func (s *Service) Folders() []string {
	out := make([]string, 0, len(s.schemas))
	for _, sc := range s.schemas {
		if sc.HasField(schema.FieldUploadedTime) {
			out = append(out, storage.FolderPath(s.basePath, sc.Table))
		}
	}
	return out
}

// CheckSchema compares the table schemas with the live database.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.schemas)
}

// CheckStorage returns the upload folders missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.Folders())
}

// CheckStorageOrMissing is CheckStorage with a missing bucket reported as every
// folder missing instead of an error.
func (s *Service) CheckStorageOrMissing(ctx context.Context) ([]string, error) {
	missing, err := s.CheckStorage(ctx)
	if errors.Is(err, storage.ErrBucketMissing) {
		s.logger.Warn("Bucket does not exist", zap.String("bucket", s.bucket))
		return missing, nil
	}
	return missing, err
}

// FixStorage creates the bucket when needed and then the missing folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	created, err := storage.EnsureBucket(ctx, s.client, s.bucket, "")
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}
