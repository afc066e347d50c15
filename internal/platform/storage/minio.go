package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements FileStore against an S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the S3 endpoint and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage.NewMinioStore: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage.NewMinioStore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage.NewMinioStore: create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := ObjectName(originalName)
	_, err := s.client.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("storage.MinioStore.Save: %v: %w", err, common.ErrStorage)
	}
	return name, nil
}

func (s *MinioStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	// GetObject is lazy; Stat first so a missing object surfaces as NotFound.
	if _, err := s.client.StatObject(ctx, s.bucket, storedName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("storage.MinioStore.Open: %v: %w", err, common.ErrStorage)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, storedName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage.MinioStore.Open: %v: %w", err, common.ErrStorage)
	}
	return obj, nil
}

func (s *MinioStore) Remove(ctx context.Context, storedName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage.MinioStore.Remove: %v: %w", err, common.ErrStorage)
	}
	return nil
}
