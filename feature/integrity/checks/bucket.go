package checks

import (
	"context"
	"fmt"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketReport is the result of the report bucket check.
type BucketReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Reports int    `json:"reports"`
}

// CheckBucket verifies that the report bucket exists and counts the archived reports under prefix.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (*BucketReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	report := &BucketReport{Bucket: bucket, Exists: exists}
	if !exists {
		return report, nil
	}

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix + "/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		report.Reports++
	}
	return report, nil
}

// FixBucket creates the report bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	logger.Info("Creating report bucket", zap.String("bucket", bucket))
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}
