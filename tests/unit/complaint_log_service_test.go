package unit_test

import (
	"context"
	"testing"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/service"
	"shakwa-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestComplaintLogService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen Scoped To Own Complaints", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := citizen()
		ownIDs := []uuid.UUID{uuid.New(), uuid.New()}

		complaintRepo.On("IDsByOwner", ctx, actor.ID).Return(ownIDs, nil).Once()
		logRepo.On("List", ctx, mock.MatchedBy(func(filter domain.ComplaintLogFilter) bool {
			return len(filter.ComplaintIDs) == 2
		}), mock.Anything).Return([]domain.ComplaintLog{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, domain.ComplaintLogFilter{}, domain.DefaultPagination())

		assert.NoError(t, err)
		logRepo.AssertExpectations(t)
	})

	t.Run("Citizen With No Complaints Sees Nothing", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := citizen()

		complaintRepo.On("IDsByOwner", ctx, actor.ID).Return(nil, nil).Once()
		// An empty (non-nil) id list still reaches the repository so the
		// ANY clause matches nothing instead of being dropped.
		logRepo.On("List", ctx, mock.MatchedBy(func(filter domain.ComplaintLogFilter) bool {
			return filter.ComplaintIDs != nil && len(filter.ComplaintIDs) == 0
		}), mock.Anything).Return([]domain.ComplaintLog{}, int64(0), nil).Once()

		result, err := svc.List(ctx, actor, domain.ComplaintLogFilter{}, domain.DefaultPagination())

		assert.NoError(t, err)
		assert.Empty(t, result.Items)
	})

	t.Run("Admin Unscoped", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := admin()

		logRepo.On("List", ctx, mock.MatchedBy(func(filter domain.ComplaintLogFilter) bool {
			return filter.ComplaintIDs == nil
		}), mock.Anything).Return([]domain.ComplaintLog{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, domain.ComplaintLogFilter{}, domain.DefaultPagination())

		assert.NoError(t, err)
		complaintRepo.AssertNotCalled(t, "IDsByOwner", mock.Anything, mock.Anything)
	})
}

func TestComplaintLogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen On Own Complaint", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := citizen()
		complaint := &domain.Complaint{ID: uuid.New(), UserID: actor.ID}

		complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		logRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.ComplaintLog) bool {
			return l.ActionBy == actor.ID && l.ActionType == "comment"
		})).Return(nil).Once()

		log, err := svc.Create(ctx, actor, domain.CreateComplaintLogInput{
			ComplaintID: complaint.ID,
			ActionType:  "comment",
			Description: "Checked the site",
		})

		assert.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("Citizen On Foreign Complaint Rejected", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := citizen()
		foreign := &domain.Complaint{ID: uuid.New(), UserID: uuid.New()}

		complaintRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		log, err := svc.Create(ctx, actor, domain.CreateComplaintLogInput{
			ComplaintID: foreign.ID,
			ActionType:  "comment",
			Description: "nope",
		})

		assert.ErrorIs(t, err, service.ErrAccessDenied)
		assert.Nil(t, log)
		logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestComplaintLogService_Timeline(t *testing.T) {
	ctx := context.Background()

	t.Run("Ascending Order Requested", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := citizen()
		complaint := &domain.Complaint{ID: uuid.New(), UserID: actor.ID}

		older := domain.ComplaintLog{ID: uuid.New(), ComplaintID: complaint.ID, ActionType: "status_changed"}
		newer := domain.ComplaintLog{ID: uuid.New(), ComplaintID: complaint.ID, ActionType: "assigned"}

		complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		logRepo.On("ListByComplaint", ctx, complaint.ID, true).Return([]domain.ComplaintLog{older, newer}, nil).Once()

		logs, err := svc.ListByComplaint(ctx, actor, complaint.ID, true)

		assert.NoError(t, err)
		assert.Equal(t, []domain.ComplaintLog{older, newer}, logs)
		logRepo.AssertExpectations(t)
	})

	t.Run("Default Listing Stays Descending", func(t *testing.T) {
		logRepo := new(mocks.ComplaintLogRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewComplaintLogService(logRepo, complaintRepo)

		actor := admin()
		complaintID := uuid.New()

		complaintRepo.On("GetByID", ctx, complaintID).Return(&domain.Complaint{ID: complaintID, UserID: uuid.New()}, nil).Once()
		logRepo.On("ListByComplaint", ctx, complaintID, false).Return([]domain.ComplaintLog{}, nil).Once()

		_, err := svc.ListByComplaint(ctx, actor, complaintID, false)

		assert.NoError(t, err)
		logRepo.AssertExpectations(t)
	})
}
