package integrity

import (
	"context"
	"errors"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by the bucket checks when no storage client is configured.
var ErrStorageDisabled = errors.New("report storage is disabled")

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when report storage is disabled.
func NewService(db *gorm.DB, client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// CheckSchema compares the catalog database with the catalog models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All())
}

// CheckBucket reports on the run report bucket.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckBucket(ctx, s.client, s.bucket, s.prefix)
}

// FixBucket creates the run report bucket.
func (s *Service) FixBucket(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixBucket(ctx, s.client, s.bucket, s.logger)
}
