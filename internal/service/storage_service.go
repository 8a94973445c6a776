package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"shakwa-backend/internal/config"
)

type StorageService interface {
	Upload(ctx context.Context, folder, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error)
	Remove(ctx context.Context, fileURL string) error
	PublicURL(stored string) string
}

type storageService struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewStorageService(minioClient *minio.Client, cfg *config.Config) StorageService {
	return &storageService{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// Upload stores the file under folder/yyyy/mm/<uuid><ext> and returns its
// public URL.
func (s *storageService) Upload(ctx context.Context, folder, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error) {
	objectKey := fmt.Sprintf("%s/%s/%s%s",
		folder, time.Now().Format("2006/01"), uuid.New().String(), path.Ext(fileName))

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return s.publicURLForKey(objectKey), nil
}

// Remove deletes the object behind a public URL. Bare legacy filenames have
// no corresponding object and are ignored.
func (s *storageService) Remove(ctx context.Context, fileURL string) error {
	objectKey := s.objectKeyFromURL(fileURL)
	if objectKey == "" {
		return nil
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectKey, minio.RemoveObjectOptions{})
}

// PublicURL resolves a stored reference to a fetchable URL. Full URLs pass
// through untouched; legacy bare filenames are mapped into the bucket root.
func (s *storageService) PublicURL(stored string) string {
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	return s.publicURLForKey(stored)
}

func (s *storageService) publicURLForKey(objectKey string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectKey)
}

func (s *storageService) objectKeyFromURL(fileURL string) string {
	parsed, err := url.Parse(fileURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	prefix := "/" + s.cfg.MinIOBucket + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return ""
	}
	return strings.TrimPrefix(parsed.Path, prefix)
}
