package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	ComplaintListener
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, actor *domain.User, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID) ([]domain.Notification, error)
	ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.Notification, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateNotificationInput) (*domain.Notification, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error)
	Statistics(ctx context.Context, actor *domain.User) (*domain.NotificationStatistics, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	complaintRepo    repository.ComplaintRepository
	userRepo         repository.UserRepository
	locale           string
}

func NewNotificationService(notificationRepo repository.NotificationRepository, complaintRepo repository.ComplaintRepository, userRepo repository.UserRepository, locale string) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		complaintRepo:    complaintRepo,
		userRepo:         userRepo,
		locale:           locale,
	}
}

// HandleComplaintEvent produces the complaint owner's feed entry for each
// event. Runs post-commit, best-effort.
func (s *notificationService) HandleComplaintEvent(ctx context.Context, event ComplaintEvent) error {
	complaint := event.Complaint

	var message string
	notifType := domain.NotifStatusUpdate

	switch event.Type {
	case EventComplaintCreated:
		message = i18n.Translate(s.locale, "complaint.received")
	case EventStatusChanged:
		message = i18n.Tf(s.locale, "complaint.status_changed", event.NewStatus)
	case EventAssigned:
		assignee := ""
		if complaint.Assignee != nil {
			assignee = complaint.Assignee.FullName
		} else if complaint.AssignedTo != nil {
			assignee = complaint.AssignedTo.String()
		}
		message = i18n.Tf(s.locale, "complaint.assigned", assignee)
	case EventImagesUploaded:
		message = i18n.Tf(s.locale, "complaint.images_added", event.ImageCount)
		notifType = domain.NotifNewComment
	default:
		return nil
	}

	notification := &domain.Notification{
		ID:          uuid.New(),
		UserID:      complaint.UserID,
		ComplaintID: complaint.ID,
		Message:     message,
		Type:        notifType,
		OldStatus:   event.OldStatus,
		NewStatus:   event.NewStatus,
		AssignedTo:  complaint.AssignedTo,
		Note:        event.Note,
	}
	return s.notificationRepo.Create(ctx, notification)
}

func (s *notificationService) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}

	recipient, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}
	if input.AssignedTo != nil {
		assignee, err := s.userRepo.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, ErrUserNotFound
		}
	}

	notification := &domain.Notification{
		ID:          uuid.New(),
		UserID:      input.UserID,
		ComplaintID: input.ComplaintID,
		Message:     input.Message,
		Type:        input.Type,
		OldStatus:   input.OldStatus,
		NewStatus:   input.NewStatus,
		AssignedTo:  input.AssignedTo,
		Note:        input.Note,
		File:        input.File,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	if !canAccess(actor, notification.UserID) {
		return nil, ErrAccessDenied
	}
	return notification, nil
}

func (s *notificationService) List(ctx context.Context, actor *domain.User, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	// Citizens only ever see their own feed.
	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	notifications, total, err := s.notificationRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.Limit, total), nil
}

func (s *notificationService) ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID) ([]domain.Notification, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	if !canAccess(actor, complaint.UserID) {
		return nil, ErrAccessDenied
	}
	return s.notificationRepo.ListByComplaint(ctx, complaintID)
}

func (s *notificationService) ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.Notification, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.notificationRepo.ListRecent(ctx, actor.ID, limit)
}

func (s *notificationService) Update(ctx context.Context, id uuid.UUID, input domain.UpdateNotificationInput) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}

	if input.Message != nil {
		notification.Message = *input.Message
	}
	if input.Type != nil {
		notification.Type = *input.Type
	}
	if input.Note != nil {
		notification.Note = input.Note
	}

	if err := s.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if !canAccess(actor, notification.UserID) {
		return ErrAccessDenied
	}
	return s.notificationRepo.Delete(ctx, id)
}

func (s *notificationService) DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error) {
	return s.notificationRepo.DeleteByComplaint(ctx, complaintID)
}

// Statistics aggregates the whole table for admins and only the actor's own
// feed for citizens.
func (s *notificationService) Statistics(ctx context.Context, actor *domain.User) (*domain.NotificationStatistics, error) {
	if actor != nil && !actor.IsAdmin() {
		return s.notificationRepo.Statistics(ctx, &actor.ID)
	}
	return s.notificationRepo.Statistics(ctx, nil)
}
