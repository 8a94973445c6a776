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

var userSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"fullName":   "full_name",
	"nationalId": "national_id",
	"userType":   "user_type",
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetProfileImage(ctx context.Context, id uuid.UUID, image *string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) (*domain.UserStatistics, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, national_id, full_name, phone, password_hash, user_type, profile_image, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.NationalID, user.FullName, user.Phone,
		user.PasswordHash, user.UserType, user.ProfileImage, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE national_id = $1`

	err := r.db.GetContext(ctx, &user, query, nationalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE national_id = $1)`
	err := r.db.GetContext(ctx, &exists, query, nationalID)
	return exists, err
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR national_id ILIKE $%d OR phone ILIKE $%d)", n, n, n)
	}
	if filter.UserType != nil {
		args = append(args, *filter.UserType)
		where += fmt.Sprintf(" AND user_type = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM users WHERE %s %s LIMIT $%d OFFSET $%d`,
		where, orderClause(params, userSortColumns, "created_at"), len(args)-1, len(args))

	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	return users, total, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = :full_name, phone = :phone, user_type = :user_type,
			password_hash = :password_hash, updated_at = NOW()
		WHERE user_id = :user_id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

func (r *userRepository) SetProfileImage(ctx context.Context, id uuid.UUID, image *string) error {
	query := `UPDATE users SET profile_image = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, image)
	return err
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, active)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) Statistics(ctx context.Context) (*domain.UserStatistics, error) {
	var stats domain.UserStatistics
	query := `
		SELECT
			COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE is_active) AS active_users,
			COUNT(*) FILTER (WHERE NOT is_active) AS inactive_users,
			COUNT(*) FILTER (WHERE user_type = 'citizen') AS citizens_count,
			COUNT(*) FILTER (WHERE user_type = 'admin') AS admins_count
		FROM users`

	err := r.db.QueryRowxContext(ctx, query).Scan(
		&stats.TotalUsers, &stats.ActiveUsers, &stats.InactiveUsers,
		&stats.CitizensCount, &stats.AdminsCount,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
