package storage

import (
	"context"
	"fmt"
	"time"

	"SndHop/config"
	"SndHop/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var minioClient *minio.Client

// InitMinio initializes the MinIO client and makes sure the artifact
// bucket exists.
func InitMinio(cfg *config.Config) error {
	logger.Info("connecting to object storage",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket),
		logger.Bool("ssl", cfg.MinioUseSSL))

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("created artifact bucket", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	logger.Info("object storage ready")
	return nil
}

// GetMinioClient returns the MinIO client instance, or nil before InitMinio.
func GetMinioClient() *minio.Client {
	return minioClient
}
