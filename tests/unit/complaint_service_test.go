package unit_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/service"
	"shakwa-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type complaintFixture struct {
	complaintRepo    *mocks.ComplaintRepository
	categoryRepo     *mocks.CategoryRepository
	userRepo         *mocks.UserRepository
	logRepo          *mocks.ComplaintLogRepository
	notificationRepo *mocks.NotificationRepository
	storage          *mocks.StorageService
	svc              service.ComplaintService
}

func newComplaintFixture() *complaintFixture {
	f := &complaintFixture{
		complaintRepo:    new(mocks.ComplaintRepository),
		categoryRepo:     new(mocks.CategoryRepository),
		userRepo:         new(mocks.UserRepository),
		logRepo:          new(mocks.ComplaintLogRepository),
		notificationRepo: new(mocks.NotificationRepository),
		storage:          new(mocks.StorageService),
	}

	dispatcher := service.NewDispatcher()
	dispatcher.Subscribe(service.NewComplaintLogService(f.logRepo, f.complaintRepo))
	dispatcher.Subscribe(service.NewNotificationService(f.notificationRepo, f.complaintRepo, f.userRepo, "en"))

	f.svc = service.NewComplaintService(f.complaintRepo, f.categoryRepo, f.userRepo, f.storage, dispatcher, nil)
	return f
}

func citizen() *domain.User {
	return &domain.User{ID: uuid.New(), UserType: domain.UserTypeCitizen, IsActive: true}
}

func admin() *domain.User {
	return &domain.User{ID: uuid.New(), UserType: domain.UserTypeAdmin, IsActive: true}
}

func TestComplaintService_Create(t *testing.T) {
	ctx := context.Background()
	actor := citizen()

	input := domain.CreateComplaintInput{
		Title:       "Broken streetlight",
		Description: "The light at the corner has been out for a week",
	}

	t.Run("Generates Public ID And Fans Out", func(t *testing.T) {
		f := newComplaintFixture()

		f.complaintRepo.On("NextSequence", ctx).Return(int64(42), nil).Once()
		f.complaintRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			matched, _ := regexp.MatchString(`^CMP-\d{8}-000042$`, c.PublicID)
			return matched &&
				c.UserID == actor.ID &&
				c.Status == domain.StatusPending &&
				c.Priority == domain.PriorityMedium
		})).Return(nil).Once()
		f.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == actor.ID && n.Type == domain.NotifStatusUpdate
		})).Return(nil).Once()

		complaint, err := f.svc.Create(ctx, actor, input, nil)

		assert.NoError(t, err)
		assert.NotNil(t, complaint)
		assert.Equal(t, domain.StatusPending, complaint.Status)

		f.complaintRepo.AssertExpectations(t)
		f.notificationRepo.AssertExpectations(t)
		// Submission notifies the owner but leaves no audit row.
		f.logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Listener Failure Does Not Fail Create", func(t *testing.T) {
		f := newComplaintFixture()

		f.complaintRepo.On("NextSequence", ctx).Return(int64(43), nil).Once()
		f.complaintRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notificationRepo.On("Create", ctx, mock.Anything).Return(errors.New("notification table down")).Once()

		complaint, err := f.svc.Create(ctx, actor, input, nil)

		assert.NoError(t, err)
		assert.NotNil(t, complaint)
		f.notificationRepo.AssertExpectations(t)
	})

	t.Run("Unknown Category Rejected", func(t *testing.T) {
		f := newComplaintFixture()

		categoryID := uuid.New()
		f.categoryRepo.On("GetByID", ctx, categoryID).Return(nil, nil).Once()

		withCategory := input
		withCategory.CategoryID = &categoryID

		complaint, err := f.svc.Create(ctx, actor, withCategory, nil)

		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
		assert.Nil(t, complaint)
	})
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actor := admin()

	t.Run("Resolved Timestamp Set Once", func(t *testing.T) {
		f := newComplaintFixture()

		complaint := &domain.Complaint{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.StatusInProgress,
		}

		f.complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil)
		f.complaintRepo.On("Update", ctx, complaint).Return(nil)
		f.logRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.notificationRepo.On("Create", ctx, mock.Anything).Return(nil)

		updated, err := f.svc.UpdateStatus(ctx, actor, complaint.ID, domain.UpdateStatusInput{Status: domain.StatusResolved})
		assert.NoError(t, err)
		assert.NotNil(t, updated.ResolvedAt)
		firstResolvedAt := *updated.ResolvedAt

		_, err = f.svc.UpdateStatus(ctx, actor, complaint.ID, domain.UpdateStatusInput{Status: domain.StatusClosed})
		assert.NoError(t, err)
		assert.NotNil(t, complaint.ClosedAt)

		// Going back to resolved must not move the original stamp.
		updated, err = f.svc.UpdateStatus(ctx, actor, complaint.ID, domain.UpdateStatusInput{Status: domain.StatusResolved})
		assert.NoError(t, err)
		assert.Equal(t, firstResolvedAt, *updated.ResolvedAt)
	})

	t.Run("Unchanged Status Still Fans Out", func(t *testing.T) {
		f := newComplaintFixture()

		complaint := &domain.Complaint{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.StatusPending,
		}

		f.complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		f.complaintRepo.On("Update", ctx, complaint).Return(nil).Once()
		f.logRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.ComplaintLog) bool {
			return l.ActionType == "status_changed" && l.ActionBy == actor.ID
		})).Return(nil).Once()
		f.notificationRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.UpdateStatus(ctx, actor, complaint.ID, domain.UpdateStatusInput{Status: domain.StatusPending})

		assert.NoError(t, err)
		f.logRepo.AssertExpectations(t)
		f.notificationRepo.AssertExpectations(t)
	})
}

func TestComplaintService_Assign(t *testing.T) {
	ctx := context.Background()
	actor := admin()

	t.Run("Promotes Pending To In Progress", func(t *testing.T) {
		f := newComplaintFixture()

		assignee := admin()
		complaint := &domain.Complaint{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Status: domain.StatusPending,
		}

		f.complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		f.userRepo.On("GetByID", ctx, assignee.ID).Return(assignee, nil).Once()
		f.complaintRepo.On("Update", ctx, complaint).Return(nil).Once()
		f.logRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.ComplaintLog) bool {
			return l.ActionType == "assigned"
		})).Return(nil).Once()
		f.notificationRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Assign(ctx, actor, complaint.ID, assignee.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)
		assert.Equal(t, assignee.ID, *updated.AssignedTo)
	})

	t.Run("Citizen Assignee Rejected", func(t *testing.T) {
		f := newComplaintFixture()

		target := citizen()
		complaint := &domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Status: domain.StatusPending}

		f.complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		f.userRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()

		_, err := f.svc.Assign(ctx, actor, complaint.ID, target.ID)

		assert.ErrorIs(t, err, service.ErrAssigneeNotAdmin)
	})
}

func TestComplaintService_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen List Forced To Own Complaints", func(t *testing.T) {
		f := newComplaintFixture()
		actor := citizen()

		f.complaintRepo.On("List", ctx, mock.MatchedBy(func(filter domain.ComplaintFilter) bool {
			return filter.UserID != nil && *filter.UserID == actor.ID
		}), mock.Anything).Return([]domain.Complaint{}, int64(0), nil).Once()

		// Even an explicit foreign user filter is overridden.
		other := uuid.New()
		result, err := f.svc.List(ctx, actor, domain.ComplaintFilter{UserID: &other}, domain.DefaultPagination())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), result.Pagination.Total)
		f.complaintRepo.AssertExpectations(t)
	})

	t.Run("Citizen Cannot Read Foreign Complaint", func(t *testing.T) {
		f := newComplaintFixture()
		actor := citizen()

		foreign := &domain.Complaint{ID: uuid.New(), UserID: uuid.New()}
		f.complaintRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		_, err := f.svc.GetByID(ctx, actor, foreign.ID)

		assert.ErrorIs(t, err, service.ErrAccessDenied)
	})

	t.Run("Admin Read Marks Unread Complaint", func(t *testing.T) {
		f := newComplaintFixture()
		actor := admin()

		complaint := &domain.Complaint{ID: uuid.New(), UserID: uuid.New(), IsRead: false}
		f.complaintRepo.On("GetByID", ctx, complaint.ID).Return(complaint, nil).Once()
		f.complaintRepo.On("MarkRead", ctx, complaint.ID).Return(nil).Once()

		got, err := f.svc.GetByID(ctx, actor, complaint.ID)

		assert.NoError(t, err)
		assert.True(t, got.IsRead)
		f.complaintRepo.AssertExpectations(t)
	})
}
