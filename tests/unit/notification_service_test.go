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

func TestNotificationService_HandleComplaintEvent(t *testing.T) {
	ctx := context.Background()

	owner := uuid.New()
	complaint := &domain.Complaint{
		ID:       uuid.New(),
		PublicID: "CMP-20250101-000007",
		UserID:   owner,
		Status:   domain.StatusInProgress,
	}

	t.Run("Status Change Snapshots Statuses", func(t *testing.T) {
		notificationRepo := new(mocks.NotificationRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewNotificationService(notificationRepo, complaintRepo, new(mocks.UserRepository), "en")

		note := "crew dispatched"
		notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == owner &&
				n.ComplaintID == complaint.ID &&
				n.OldStatus == domain.StatusPending &&
				n.NewStatus == domain.StatusInProgress &&
				n.Note != nil && *n.Note == note
		})).Return(nil).Once()

		err := svc.HandleComplaintEvent(ctx, service.ComplaintEvent{
			Type:      service.EventStatusChanged,
			Complaint: complaint,
			ActorID:   uuid.New(),
			OldStatus: domain.StatusPending,
			NewStatus: domain.StatusInProgress,
			Note:      &note,
		})

		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Creation Notifies Owner", func(t *testing.T) {
		notificationRepo := new(mocks.NotificationRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewNotificationService(notificationRepo, complaintRepo, new(mocks.UserRepository), "en")

		notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == owner && n.Message != ""
		})).Return(nil).Once()

		err := svc.HandleComplaintEvent(ctx, service.ComplaintEvent{
			Type:      service.EventComplaintCreated,
			Complaint: complaint,
			ActorID:   owner,
			NewStatus: domain.StatusPending,
		})

		assert.NoError(t, err)
	})
}

func TestNotificationService_Scoping(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen Feed Forced To Own", func(t *testing.T) {
		notificationRepo := new(mocks.NotificationRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewNotificationService(notificationRepo, complaintRepo, new(mocks.UserRepository), "en")

		actor := citizen()
		notificationRepo.On("List", ctx, mock.MatchedBy(func(filter domain.NotificationFilter) bool {
			return filter.UserID != nil && *filter.UserID == actor.ID
		}), mock.Anything).Return([]domain.Notification{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, domain.NotificationFilter{}, domain.DefaultPagination())

		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Citizen Cannot Read Foreign Notification", func(t *testing.T) {
		notificationRepo := new(mocks.NotificationRepository)
		complaintRepo := new(mocks.ComplaintRepository)
		svc := service.NewNotificationService(notificationRepo, complaintRepo, new(mocks.UserRepository), "en")

		actor := citizen()
		foreign := &domain.Notification{ID: uuid.New(), UserID: uuid.New()}
		notificationRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		_, err := svc.GetByID(ctx, actor, foreign.ID)

		assert.ErrorIs(t, err, service.ErrAccessDenied)
	})
}
