package mocks

import (
	"context"

	"shakwa-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ComplaintLogRepository struct {
	mock.Mock
}

func (m *ComplaintLogRepository) Create(ctx context.Context, log *domain.ComplaintLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *ComplaintLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintLog), args.Error(1)
}

func (m *ComplaintLogRepository) List(ctx context.Context, filter domain.ComplaintLogFilter, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ComplaintLog), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintLogRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID, ascending bool) ([]domain.ComplaintLog, error) {
	args := m.Called(ctx, complaintID, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplaintLog), args.Error(1)
}

func (m *ComplaintLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ComplaintLog), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ComplaintLogRepository) DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ComplaintLogRepository) Statistics(ctx context.Context) (*domain.ComplaintLogStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintLogStatistics), args.Error(1)
}
