package mocks

import (
	"context"

	"shakwa-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) Create(ctx context.Context, category *domain.ComplaintCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintCategory), args.Error(1)
}

func (m *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.ComplaintCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintCategory), args.Error(1)
}

func (m *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]domain.ComplaintCategory, int64, error) {
	args := m.Called(ctx, search, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ComplaintCategory), args.Get(1).(int64), args.Error(2)
}

func (m *CategoryRepository) ListAll(ctx context.Context) ([]domain.ComplaintCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplaintCategory), args.Error(1)
}

func (m *CategoryRepository) Update(ctx context.Context, category *domain.ComplaintCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
