package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"fundpitch-backend/shared/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOService hands out presigned URLs so uploads and downloads go
// straight to object storage instead of through the API.
type MinIOService struct {
	client     *minio.Client
	bucketName string
	expiry     time.Duration
}

var folderNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9/_-]{0,99}$`)

func NewMinIOService() (*MinIOService, error) {
	cfg := config.GetConfig()

	// Parse endpoint URL to get host
	parsedURL, err := url.Parse(cfg.MinIOServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MinIO endpoint: %v", err)
	}

	endpoint := parsedURL.Host
	useSSL := cfg.MinIOUseSSL

	log.Printf("🔗 Connecting to MinIO: %s (SSL: %v)", endpoint, useSSL)

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIORootUser, cfg.MinIORootPassword, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	service := &MinIOService{
		client:     minioClient,
		bucketName: cfg.MinIOBucketName,
		expiry:     time.Duration(cfg.GetPresignExpiryMinutes()) * time.Minute,
	}

	// Test connection and create bucket if needed
	if err := service.initializeBucket(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *MinIOService) initializeBucket() error {
	ctx := context.Background()

	log.Printf("🪣 Checking bucket: %s", s.bucketName)

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("✅ MinIO bucket '%s' created successfully", s.bucketName)
	} else {
		log.Printf("✅ MinIO bucket '%s' already exists", s.bucketName)
	}

	return nil
}

// ValidFolderName reports whether the caller-chosen folder is usable as
// a key prefix.
func ValidFolderName(folder string) bool {
	return folderNameRe.MatchString(folder) && !strings.Contains(folder, "..")
}

// PresignUpload generates a PUT URL for a fresh object key under the
// given folder. The key is random so callers can never overwrite each
// other's objects.
func (s *MinIOService) PresignUpload(ctx context.Context, folder string) (key string, uploadURL string, err error) {
	key = fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), uuid.New().String())

	presigned, err := s.client.PresignedPutObject(ctx, s.bucketName, key, s.expiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %v", err)
	}

	return key, presigned.String(), nil
}

// PresignDownload generates a GET URL for an existing object key.
func (s *MinIOService) PresignDownload(ctx context.Context, key string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucketName, key, s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %v", err)
	}
	return presigned.String(), nil
}

// ObjectExists checks a key before presigning a download for it.
func (s *MinIOService) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveObject deletes an object by key.
func (s *MinIOService) RemoveObject(ctx context.Context, key string) error {
	log.Printf("🗑️ Removing object: %s/%s", s.bucketName, key)

	if err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %v", err)
	}

	log.Printf("✅ Object '%s' removed successfully", key)
	return nil
}
