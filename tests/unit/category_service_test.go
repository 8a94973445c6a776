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

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.CategoryRepository)
		svc := service.NewCategoryService(mockRepo)

		mockRepo.On("ExistsByName", ctx, "Roads", (*uuid.UUID)(nil)).Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.ComplaintCategory) bool {
			return c.Name == "Roads"
		})).Return(nil).Once()

		category, err := svc.Create(ctx, domain.CreateCategoryInput{Name: "Roads", Description: "Road maintenance"})

		assert.NoError(t, err)
		assert.Equal(t, "Roads", category.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Case Insensitive Duplicate", func(t *testing.T) {
		mockRepo := new(mocks.CategoryRepository)
		svc := service.NewCategoryService(mockRepo)

		// The repository compares lower(name), so "ROADS" collides with an
		// existing "roads".
		mockRepo.On("ExistsByName", ctx, "ROADS", (*uuid.UUID)(nil)).Return(true, nil).Once()

		category, err := svc.Create(ctx, domain.CreateCategoryInput{Name: "ROADS", Description: "dup"})

		assert.ErrorIs(t, err, service.ErrCategoryExists)
		assert.Nil(t, category)
	})
}

func TestCategoryService_BulkCreate(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(mocks.CategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	mockRepo.On("ExistsByName", ctx, "Water", (*uuid.UUID)(nil)).Return(false, nil).Once()
	mockRepo.On("ExistsByName", ctx, "water", (*uuid.UUID)(nil)).Return(true, nil).Once()
	mockRepo.On("ExistsByName", ctx, "Electricity", (*uuid.UUID)(nil)).Return(false, nil).Once()
	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Twice()

	result, err := svc.BulkCreate(ctx, []domain.CreateCategoryInput{
		{Name: "Water", Description: "a"},
		{Name: "water", Description: "b"},
		{Name: "Electricity", Description: "c"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 1)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Rename Collision", func(t *testing.T) {
		mockRepo := new(mocks.CategoryRepository)
		svc := service.NewCategoryService(mockRepo)

		id := uuid.New()
		existing := &domain.ComplaintCategory{ID: id, Name: "Roads"}
		newName := "Sanitation"

		mockRepo.On("GetByID", ctx, id).Return(existing, nil).Once()
		mockRepo.On("ExistsByName", ctx, "Sanitation", &id).Return(true, nil).Once()

		category, err := svc.Update(ctx, id, domain.UpdateCategoryInput{Name: &newName})

		assert.ErrorIs(t, err, service.ErrCategoryExists)
		assert.Nil(t, category)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.CategoryRepository)
		svc := service.NewCategoryService(mockRepo)

		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		category, err := svc.Update(ctx, id, domain.UpdateCategoryInput{})

		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
		assert.Nil(t, category)
	})
}
