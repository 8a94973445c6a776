package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/repository"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrAlreadyRated   = errors.New("complaint already rated by this user")
)

type RatingService interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateRatingInput) (*domain.Rating, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Rating, error)
	List(ctx context.Context, actor *domain.User, filter domain.RatingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Rating], error)
	ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID) ([]domain.Rating, error)
	ListWithFeedback(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Rating], error)
	HasRated(ctx context.Context, actor *domain.User, complaintID uuid.UUID) (bool, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateRatingInput) (*domain.Rating, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	AverageByComplaint(ctx context.Context, complaintID uuid.UUID) (float64, int64, error)
	Statistics(ctx context.Context, actor *domain.User) (*domain.RatingStatistics, error)
}

type ratingService struct {
	ratingRepo    repository.RatingRepository
	complaintRepo repository.ComplaintRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, complaintRepo repository.ComplaintRepository) RatingService {
	return &ratingService{
		ratingRepo:    ratingRepo,
		complaintRepo: complaintRepo,
	}
}

func (s *ratingService) Create(ctx context.Context, actor *domain.User, input domain.CreateRatingInput) (*domain.Rating, error) {
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

	existing, err := s.ratingRepo.GetByComplaintAndUser(ctx, input.ComplaintID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	rating := &domain.Rating{
		ID:          uuid.New(),
		ComplaintID: input.ComplaintID,
		UserID:      actor.ID,
		Rating:      input.Rating,
		Feedback:    input.Feedback,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		// The unique index is the last line of defense against a concurrent
		// double-submit.
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	if !canAccess(actor, rating.UserID) {
		return nil, ErrAccessDenied
	}
	return rating, nil
}

func (s *ratingService) List(ctx context.Context, actor *domain.User, filter domain.RatingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Rating], error) {
	params.Validate()

	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	ratings, total, err := s.ratingRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Rating]{}, err
	}
	return domain.NewPaginatedResponse(ratings, params.Page, params.Limit, total), nil
}

func (s *ratingService) ListByComplaint(ctx context.Context, actor *domain.User, complaintID uuid.UUID) ([]domain.Rating, error) {
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
	return s.ratingRepo.ListByComplaint(ctx, complaintID)
}

func (s *ratingService) ListWithFeedback(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Rating], error) {
	params.Validate()

	ratings, total, err := s.ratingRepo.ListWithFeedback(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Rating]{}, err
	}
	return domain.NewPaginatedResponse(ratings, params.Page, params.Limit, total), nil
}

func (s *ratingService) HasRated(ctx context.Context, actor *domain.User, complaintID uuid.UUID) (bool, error) {
	existing, err := s.ratingRepo.GetByComplaintAndUser(ctx, complaintID, actor.ID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (s *ratingService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateRatingInput) (*domain.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	if !canAccess(actor, rating.UserID) {
		return nil, ErrAccessDenied
	}

	if input.Rating != nil {
		rating.Rating = *input.Rating
	}
	if input.Feedback != nil {
		rating.Feedback = input.Feedback
	}

	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rating == nil {
		return ErrRatingNotFound
	}
	if !canAccess(actor, rating.UserID) {
		return ErrAccessDenied
	}
	return s.ratingRepo.Delete(ctx, id)
}

func (s *ratingService) AverageByComplaint(ctx context.Context, complaintID uuid.UUID) (float64, int64, error) {
	return s.ratingRepo.AverageByComplaint(ctx, complaintID)
}

// Statistics covers the whole table for admins; citizens only see the numbers
// for ratings they submitted themselves.
func (s *ratingService) Statistics(ctx context.Context, actor *domain.User) (*domain.RatingStatistics, error) {
	var userID *uuid.UUID
	if !actor.IsAdmin() {
		userID = &actor.ID
	}
	return s.ratingRepo.Statistics(ctx, userID)
}
