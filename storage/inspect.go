package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// BucketStats summarizes the artifact bucket.
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
}

// CollectBucketStats walks the bucket and aggregates object counts and
// sizes. Used by the storage subcommand to sanity-check a deployment.
func CollectBucketStats(ctx context.Context, bucket string) (*BucketStats, error) {
	client := GetMinioClient()
	if client == nil {
		return nil, fmt.Errorf("minio client not initialized")
	}

	stats := &BucketStats{}
	objectCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects: %w", object.Err)
		}
		stats.TotalObjects++
		stats.TotalSize += object.Size
		if object.LastModified.After(stats.LastModified) {
			stats.LastModified = object.LastModified
		}
	}
	return stats, nil
}
