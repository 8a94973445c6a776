package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category name already exists")
)

type CategoryService interface {
	Create(ctx context.Context, input domain.CreateCategoryInput) (*domain.ComplaintCategory, error)
	BulkCreate(ctx context.Context, inputs []domain.CreateCategoryInput) (*domain.BulkCreateResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintCategory, error)
	GetByName(ctx context.Context, name string) (*domain.ComplaintCategory, error)
	List(ctx context.Context, search string, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintCategory], error)
	ListAll(ctx context.Context) ([]domain.ComplaintCategory, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateCategoryInput) (*domain.ComplaintCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) (*domain.CategoryStatistics, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, input domain.CreateCategoryInput) (*domain.ComplaintCategory, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, input.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &domain.ComplaintCategory{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// BulkCreate inserts each category independently. Duplicates are skipped and
// reported, not treated as failures.
func (s *categoryService) BulkCreate(ctx context.Context, inputs []domain.CreateCategoryInput) (*domain.BulkCreateResult, error) {
	result := &domain.BulkCreateResult{}

	for _, input := range inputs {
		_, err := s.Create(ctx, input)
		if errors.Is(err, ErrCategoryExists) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: already exists", input.Name))
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", input.Name, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetByName matches case-insensitively.
func (s *categoryService) GetByName(ctx context.Context, name string) (*domain.ComplaintCategory, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, search string, params domain.PaginationParams) (domain.PaginatedResponse[domain.ComplaintCategory], error) {
	params.Validate()

	categories, total, err := s.categoryRepo.List(ctx, search, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ComplaintCategory]{}, err
	}
	return domain.NewPaginatedResponse(categories, params.Page, params.Limit, total), nil
}

func (s *categoryService) ListAll(ctx context.Context) ([]domain.ComplaintCategory, error) {
	return s.categoryRepo.ListAll(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input domain.UpdateCategoryInput) (*domain.ComplaintCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != nil {
		exists, err := s.categoryRepo.ExistsByName(ctx, *input.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCategoryExists
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category only. Complaints pointing at it keep their
// dangling category_id and render without a category summary.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) Statistics(ctx context.Context) (*domain.CategoryStatistics, error) {
	total, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.CategoryStatistics{TotalCategories: total}, nil
}
