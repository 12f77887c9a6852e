package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"SndHop/config"
	"SndHop/logger"

	"github.com/minio/minio-go/v7"
)

const artifactContentType = "audio/mpeg"

// ArtifactUploader persists finished MP3 artifacts under random content
// keys. The key is the only index: no record of the mapping is kept
// anywhere, so the returned URL is the one handle to the object.
type ArtifactUploader struct {
	client  *minio.Client
	bucket  string
	cdnBase string
}

// NewArtifactUploader creates an uploader backed by the global MinIO
// client. InitMinio must have run first.
func NewArtifactUploader(cfg *config.Config) (*ArtifactUploader, error) {
	client := GetMinioClient()
	if client == nil {
		return nil, fmt.Errorf("minio client not initialized")
	}
	return &ArtifactUploader{
		client:  client,
		bucket:  cfg.MinioBucket,
		cdnBase: strings.TrimRight(cfg.CDNBaseURL, "/"),
	}, nil
}

// Upload stores the artifact and returns its public CDN URL.
func (u *ArtifactUploader) Upload(ctx context.Context, data []byte) (string, error) {
	key := newContentKey()

	_, err := u.client.PutObject(ctx, u.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: artifactContentType})
	if err != nil {
		return "", fmt.Errorf("upload artifact: %w", err)
	}

	logger.Info("artifact uploaded",
		logger.String("key", key[:16]+"..."),
		logger.Int("bytes", len(data)))
	return u.cdnBase + "/" + key, nil
}

// newContentKey generates a 128-hex-character random key with the audio
// extension. 64 random bytes make a collision check unnecessary.
func newContentKey() string {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return hex.EncodeToString(buf) + ".mp3"
}
