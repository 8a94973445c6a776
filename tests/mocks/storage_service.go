package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type StorageService struct {
	mock.Mock
}

func (m *StorageService) Upload(ctx context.Context, folder, fileName, mimeType string, fileSize int64, reader io.Reader) (string, error) {
	args := m.Called(ctx, folder, fileName, mimeType, fileSize, reader)
	return args.String(0), args.Error(1)
}

func (m *StorageService) Remove(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

func (m *StorageService) PublicURL(stored string) string {
	args := m.Called(stored)
	return args.String(0)
}
