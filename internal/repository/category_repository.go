package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shakwa-backend/internal/domain"
)

var categorySortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.ComplaintCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintCategory, error)
	GetByName(ctx context.Context, name string) (*domain.ComplaintCategory, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, search string, params domain.PaginationParams) ([]domain.ComplaintCategory, int64, error)
	ListAll(ctx context.Context) ([]domain.ComplaintCategory, error)
	Update(ctx context.Context, category *domain.ComplaintCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.ComplaintCategory) error {
	query := `
		INSERT INTO complaint_categories (category_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		category.ID, category.Name, category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintCategory, error) {
	var category domain.ComplaintCategory
	query := `SELECT * FROM complaint_categories WHERE category_id = $1`

	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.ComplaintCategory, error) {
	var category domain.ComplaintCategory
	query := `SELECT * FROM complaint_categories WHERE lower(name) = lower($1)`

	err := r.db.GetContext(ctx, &category, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName checks case-insensitively via the lower(name) unique index.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM complaint_categories WHERE lower(name) = lower($1) AND category_id <> $2)`
		err := r.db.GetContext(ctx, &exists, query, name, *excludeID)
		return exists, err
	}
	query := `SELECT EXISTS(SELECT 1 FROM complaint_categories WHERE lower(name) = lower($1))`
	err := r.db.GetContext(ctx, &exists, query, name)
	return exists, err
}

func (r *categoryRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]domain.ComplaintCategory, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", n, n)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaint_categories WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM complaint_categories WHERE %s %s LIMIT $%d OFFSET $%d`,
		where, orderClause(params, categorySortColumns, "created_at"), len(args)-1, len(args))

	var categories []domain.ComplaintCategory
	err := r.db.SelectContext(ctx, &categories, query, args...)
	return categories, total, err
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]domain.ComplaintCategory, error) {
	var categories []domain.ComplaintCategory
	query := `SELECT * FROM complaint_categories ORDER BY name`

	err := r.db.SelectContext(ctx, &categories, query)
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.ComplaintCategory) error {
	query := `
		UPDATE complaint_categories
		SET name = $2, description = $3, updated_at = NOW()
		WHERE category_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		category.ID, category.Name, category.Description,
	).Scan(&category.UpdatedAt)
}

// Delete does not touch complaints referencing the category; their
// category_id is left dangling.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM complaint_categories WHERE category_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM complaint_categories`)
	return count, err
}
