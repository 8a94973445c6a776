package mocks

import (
	"context"

	"shakwa-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RatingRepository struct {
	mock.Mock
}

func (m *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *RatingRepository) GetByComplaintAndUser(ctx context.Context, complaintID, userID uuid.UUID) (*domain.Rating, error) {
	args := m.Called(ctx, complaintID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *RatingRepository) List(ctx context.Context, filter domain.RatingFilter, params domain.PaginationParams) ([]domain.Rating, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *RatingRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.Rating, error) {
	args := m.Called(ctx, complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *RatingRepository) ListWithFeedback(ctx context.Context, params domain.PaginationParams) ([]domain.Rating, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *RatingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RatingRepository) AverageByComplaint(ctx context.Context, complaintID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *RatingRepository) Statistics(ctx context.Context, userID *uuid.UUID) (*domain.RatingStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingStatistics), args.Error(1)
}
