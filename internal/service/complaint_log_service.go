package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/repository"
)

var ErrLogNotFound = errors.New("complaint log not found")

type ComplaintLogService interface {
	ComplaintListener
	Create(ctx context.Context, actor *domain.User, input domain.CreateComplaintLogInput) (*domain.ComplaintLog, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.ComplaintLog, error)
	List(ctx context.Context, actor *domain.User, filter domain.ComplaintLogFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintLog], error)
	ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID, ascending bool) ([]domain.ComplaintLog, error)
	ListByUser(ctx context.Context, actor *domain.User, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintLog], error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error)
	Statistics(ctx context.Context) (*domain.ComplaintLogStatistics, error)
}

type complaintLogService struct {
	logRepo       repository.ComplaintLogRepository
	complaintRepo repository.ComplaintRepository
}

func NewComplaintLogService(logRepo repository.ComplaintLogRepository, complaintRepo repository.ComplaintRepository) ComplaintLogService {
	return &complaintLogService{
		logRepo:       logRepo,
		complaintRepo: complaintRepo,
	}
}

// HandleComplaintEvent appends an audit row for lifecycle events. Creation
// itself only notifies the owner and leaves no log entry. This runs
// post-commit; a failure here is the caller's to log, never to retry.
func (s *complaintLogService) HandleComplaintEvent(ctx context.Context, event ComplaintEvent) error {
	var actionType, description string

	switch event.Type {
	case EventStatusChanged:
		actionType = "status_changed"
		description = fmt.Sprintf("Status changed from %s to %s", event.OldStatus, event.NewStatus)
		if event.Note != nil && *event.Note != "" {
			description += ": " + *event.Note
		}
	case EventAssigned:
		actionType = "assigned"
		assignee := ""
		if event.Complaint.AssignedTo != nil {
			assignee = event.Complaint.AssignedTo.String()
		}
		description = fmt.Sprintf("Complaint assigned to %s", assignee)
	case EventImagesUploaded:
		actionType = "images_uploaded"
		description = fmt.Sprintf("%d images added", event.ImageCount)
	default:
		return nil
	}

	log := &domain.ComplaintLog{
		ID:          uuid.New(),
		ComplaintID: event.Complaint.ID,
		ActionBy:    event.ActorID,
		ActionType:  actionType,
		Description: description,
	}
	return s.logRepo.Create(ctx, log)
}

func (s *complaintLogService) Create(ctx context.Context, actor *domain.User, input domain.CreateComplaintLogInput) (*domain.ComplaintLog, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	if !canAccess(actor, complaint.UserID) {
		return nil, ErrAccessDenied
	}

	log := &domain.ComplaintLog{
		ID:          uuid.New(),
		ComplaintID: input.ComplaintID,
		ActionBy:    actor.ID,
		ActionType:  input.ActionType,
		Description: input.Description,
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *complaintLogService) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.ComplaintLog, error) {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrLogNotFound
	}

	if !actor.IsAdmin() {
		complaint, err := s.complaintRepo.GetByID(ctx, log.ComplaintID)
		if err != nil {
			return nil, err
		}
		if complaint == nil || complaint.UserID != actor.ID {
			return nil, ErrAccessDenied
		}
	}
	return log, nil
}

// List scopes citizens to logs of their own complaints by resolving their
// complaint ids up front.
func (s *complaintLogService) List(ctx context.Context, actor *domain.User, filter domain.ComplaintLogFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintLog], error) {
	params.Validate()

	if !actor.IsAdmin() {
		ids, err := s.complaintRepo.IDsByOwner(ctx, actor.ID)
		if err != nil {
			return domain.PaginatedResponse[domain.ComplaintLog]{}, err
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		filter.ComplaintIDs = ids
	}

	logs, total, err := s.logRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ComplaintLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.Limit, total), nil
}

func (s *complaintLogService) ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID, ascending bool) ([]domain.ComplaintLog, error) {
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

	return s.logRepo.ListByComplaint(ctx, complaintID, ascending)
}

// ListByUser returns actions performed by a user. Citizens may only query
// themselves.
func (s *complaintLogService) ListByUser(ctx context.Context, actor *domain.User, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintLog], error) {
	if !canAccess(actor, userID) {
		return domain.PaginatedResponse[domain.ComplaintLog]{}, ErrAccessDenied
	}
	params.Validate()

	logs, total, err := s.logRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ComplaintLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.Limit, total), nil
}

func (s *complaintLogService) Delete(ctx context.Context, id uuid.UUID) error {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if log == nil {
		return ErrLogNotFound
	}
	return s.logRepo.Delete(ctx, id)
}

func (s *complaintLogService) DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error) {
	return s.logRepo.DeleteByComplaint(ctx, complaintID)
}

func (s *complaintLogService) Statistics(ctx context.Context) (*domain.ComplaintLogStatistics, error) {
	return s.logRepo.Statistics(ctx)
}
