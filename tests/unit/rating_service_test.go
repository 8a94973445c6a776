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

func TestRatingService_Create(t *testing.T) {
	ctx := context.Background()
	actor := citizen()

	resolved := &domain.Complaint{
		ID:     uuid.New(),
		UserID: actor.ID,
		Status: domain.StatusResolved,
	}

	input := domain.CreateRatingInput{
		ComplaintID: resolved.ID,
		Rating:      4,
	}

	t.Run("Success", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		complaintRepo.On("GetByID", ctx, resolved.ID).Return(resolved, nil).Once()
		ratingRepo.On("GetByComplaintAndUser", ctx, resolved.ID, actor.ID).Return(nil, nil).Once()
		ratingRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rating) bool {
			return r.ComplaintID == resolved.ID && r.UserID == actor.ID && r.Rating == 4
		})).Return(nil).Once()

		rating, err := svc.Create(ctx, actor, input)

		assert.NoError(t, err)
		assert.NotNil(t, rating)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		complaintRepo.On("GetByID", ctx, resolved.ID).Return(resolved, nil).Once()
		ratingRepo.On("GetByComplaintAndUser", ctx, resolved.ID, actor.ID).
			Return(&domain.Rating{ID: uuid.New()}, nil).Once()

		rating, err := svc.Create(ctx, actor, input)

		assert.ErrorIs(t, err, service.ErrAlreadyRated)
		assert.Nil(t, rating)
		ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Any Status Accepted", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		// Owners may rate at any point in the lifecycle, pending included.
		pending := &domain.Complaint{ID: uuid.New(), UserID: actor.ID, Status: domain.StatusPending}
		complaintRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()
		ratingRepo.On("GetByComplaintAndUser", ctx, pending.ID, actor.ID).Return(nil, nil).Once()
		ratingRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rating) bool {
			return r.ComplaintID == pending.ID && r.Rating == 3
		})).Return(nil).Once()

		rating, err := svc.Create(ctx, actor, domain.CreateRatingInput{ComplaintID: pending.ID, Rating: 3})

		assert.NoError(t, err)
		assert.NotNil(t, rating)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Foreign Complaint Rejected", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		foreign := &domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Status: domain.StatusResolved}
		complaintRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		rating, err := svc.Create(ctx, actor, domain.CreateRatingInput{ComplaintID: foreign.ID, Rating: 5})

		assert.ErrorIs(t, err, service.ErrAccessDenied)
		assert.Nil(t, rating)
	})
}

func TestRatingService_Scoping(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen List Forced To Own Ratings", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		actor := citizen()
		ratingRepo.On("List", ctx, mock.MatchedBy(func(filter domain.RatingFilter) bool {
			return filter.UserID != nil && *filter.UserID == actor.ID
		}), mock.Anything).Return([]domain.Rating{}, int64(0), nil).Once()

		_, err := svc.List(ctx, actor, domain.RatingFilter{}, domain.DefaultPagination())

		assert.NoError(t, err)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Citizen Cannot Update Foreign Rating", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		actor := citizen()
		foreign := &domain.Rating{ID: uuid.New(), UserID: uuid.New(), Rating: 2}
		ratingRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		five := 5
		_, err := svc.Update(ctx, actor, foreign.ID, domain.UpdateRatingInput{Rating: &five})

		assert.ErrorIs(t, err, service.ErrAccessDenied)
	})
}

func TestRatingService_Statistics(t *testing.T) {
	ctx := context.Background()

	stats := &domain.RatingStatistics{
		TotalRatings:       3,
		AverageRating:      4.2,
		RatingDistribution: map[string]int64{"4_stars": 2, "5_stars": 1},
	}

	t.Run("Citizen Scoped To Own Ratings", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		actor := citizen()
		ratingRepo.On("Statistics", ctx, mock.MatchedBy(func(userID *uuid.UUID) bool {
			return userID != nil && *userID == actor.ID
		})).Return(stats, nil).Once()

		got, err := svc.Statistics(ctx, actor)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), got.RatingDistribution["4_stars"])
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Admin Sees Everything", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		ratingRepo.On("Statistics", ctx, (*uuid.UUID)(nil)).Return(stats, nil).Once()

		_, err := svc.Statistics(ctx, admin())

		assert.NoError(t, err)
		ratingRepo.AssertExpectations(t)
	})
}

func TestRatingService_HasRated(t *testing.T) {
	ctx := context.Background()
	actor := citizen()
	complaintID := uuid.New()

	t.Run("Rated", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		existing := &domain.Rating{ID: uuid.New(), ComplaintID: complaintID, UserID: actor.ID, Rating: 5}
		ratingRepo.On("GetByComplaintAndUser", ctx, complaintID, actor.ID).Return(existing, nil).Once()

		rated, err := svc.HasRated(ctx, actor, complaintID)

		assert.NoError(t, err)
		assert.True(t, rated)
	})

	t.Run("Not Rated", func(t *testing.T) {
		complaintRepo := new(mocks.ComplaintRepository)
		ratingRepo := new(mocks.RatingRepository)
		svc := service.NewRatingService(ratingRepo, complaintRepo)

		ratingRepo.On("GetByComplaintAndUser", ctx, complaintID, actor.ID).Return(nil, nil).Once()

		rated, err := svc.HasRated(ctx, actor, complaintID)

		assert.NoError(t, err)
		assert.False(t, rated)
	})
}
