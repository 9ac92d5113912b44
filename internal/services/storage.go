package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docuseek/internal/config"
)

type ObjectStorageService interface {
	EnsureBucket(ctx context.Context) error
	// Upload pushes the file once and returns its stable public base URL. The
	// link outlives this process; page links are derived from it.
	Upload(ctx context.Context, filePath string, originalFilename string) (string, error)
}

type objectStorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewObjectStorageService(cfg config.MinioConfig) (ObjectStorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &objectStorageService{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// EnsureBucket implements ObjectStorageService.
func (s *objectStorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if exists {
		log.Println("✅ Bucket already exists")
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	log.Printf("✅ Bucket '%s' created successfully\n", s.bucket)
	return nil
}

// Upload implements ObjectStorageService.
func (s *objectStorageService) Upload(ctx context.Context, filePath string, originalFilename string) (string, error) {
	ext := filepath.Ext(originalFilename)
	objectName := fmt.Sprintf("documents/%s%s", uuid.New().String(), ext)

	_, err := s.client.FPutObject(ctx, s.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
