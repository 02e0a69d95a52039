package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	core "catalog-sync/core/reconcile"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNoReport is returned when no run report has been archived yet.
var ErrNoReport = errors.New("no run report found")

// Archive stores run summaries as JSON objects.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchive creates an archive writing to bucket under prefix.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object name of the report for runID.
func (a *Archive) Key(runID string) string {
	return path.Join(a.prefix, runID+".json")
}

// EnsureBucket creates the bucket when it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Save writes summary and returns its object name.
func (a *Archive) Save(ctx context.Context, summary *core.RunSummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode run report: %w", err)
	}

	key := a.Key(summary.RunID)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload run report %s: %w", key, err)
	}
	return key, nil
}

// Load reads the report of runID.
func (a *Archive) Load(ctx context.Context, runID string) (*core.RunSummary, error) {
	return a.load(ctx, a.Key(runID))
}

// Latest reads the most recently written report.
func (a *Archive) Latest(ctx context.Context) (*core.RunSummary, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if a.prefix != "" {
		opts.Prefix = a.prefix + "/"
	}

	var (
		latestKey string
		latestAt  time.Time
	)
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list run reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		if latestKey == "" || obj.LastModified.After(latestAt) {
			latestKey, latestAt = obj.Key, obj.LastModified
		}
	}

	if latestKey == "" {
		return nil, ErrNoReport
	}
	return a.load(ctx, latestKey)
}

func (a *Archive) load(ctx context.Context, key string) (*core.RunSummary, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get run report %s: %w", key, err)
	}
	defer obj.Close()

	var summary core.RunSummary
	if err := json.NewDecoder(obj).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode run report %s: %w", key, err)
	}
	return &summary, nil
}
