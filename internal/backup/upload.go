package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jorge-barreto/appgen/internal/config"
)

// Uploader stores exported archives in an S3-compatible bucket.
type Uploader struct {
	client *minio.Client
	bucket string
	region string
}

// NewUploader returns nil, nil when no bucket is configured.
func NewUploader(cfg config.Export) (*Uploader, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, nil
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("export endpoint is required when a bucket is set")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("APPGEN_S3_ACCESS_KEY and APPGEN_S3_SECRET_KEY are required for upload")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket, region: region}, nil
}

// Upload puts the archive at zipPath into the bucket, creating the bucket
// if needed, and returns the object URL.
func (u *Uploader) Upload(ctx context.Context, zipPath string) (string, error) {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return "", fmt.Errorf("checking bucket: %w", err)
	}
	if !exists {
		if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{Region: u.region}); err != nil {
			return "", fmt.Errorf("creating bucket: %w", err)
		}
	}

	key := filepath.Base(zipPath)
	if _, err := u.client.FPutObject(ctx, u.bucket, key, zipPath, minio.PutObjectOptions{
		ContentType: "application/zip",
	}); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return u.client.EndpointURL().JoinPath(u.bucket, key).String(), nil
}
