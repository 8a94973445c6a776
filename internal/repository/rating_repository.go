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

var ratingSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"rating":    "rating",
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error)
	GetByComplaintAndUser(ctx context.Context, complaintID, userID uuid.UUID) (*domain.Rating, error)
	List(ctx context.Context, filter domain.RatingFilter, params domain.PaginationParams) ([]domain.Rating, int64, error)
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.Rating, error)
	ListWithFeedback(ctx context.Context, params domain.PaginationParams) ([]domain.Rating, int64, error)
	Update(ctx context.Context, rating *domain.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
	AverageByComplaint(ctx context.Context, complaintID uuid.UUID) (float64, int64, error)
	Statistics(ctx context.Context, userID *uuid.UUID) (*domain.RatingStatistics, error)
}

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (rating_id, complaint_id, user_id, rating, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		rating.ID, rating.ComplaintID, rating.UserID, rating.Rating, rating.Feedback,
	).Scan(&rating.CreatedAt, &rating.UpdatedAt)
}

func (r *ratingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rating, error) {
	var rating domain.Rating
	query := `SELECT * FROM ratings WHERE rating_id = $1`

	err := r.db.GetContext(ctx, &rating, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetByComplaintAndUser(ctx context.Context, complaintID, userID uuid.UUID) (*domain.Rating, error) {
	var rating domain.Rating
	query := `SELECT * FROM ratings WHERE complaint_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &rating, query, complaintID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) List(ctx context.Context, filter domain.RatingFilter, params domain.PaginationParams) ([]domain.Rating, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if filter.ComplaintID != nil {
		args = append(args, *filter.ComplaintID)
		where += fmt.Sprintf(" AND complaint_id = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Rating != nil {
		args = append(args, *filter.Rating)
		where += fmt.Sprintf(" AND rating = $%d", len(args))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		where += fmt.Sprintf(" AND rating >= $%d", len(args))
	}
	if filter.MaxRating != nil {
		args = append(args, *filter.MaxRating)
		where += fmt.Sprintf(" AND rating <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND feedback ILIKE $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM ratings WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM ratings WHERE %s %s LIMIT $%d OFFSET $%d`,
		where, orderClause(params, ratingSortColumns, "created_at"), len(args)-1, len(args))

	var ratings []domain.Rating
	err := r.db.SelectContext(ctx, &ratings, query, args...)
	return ratings, total, err
}

func (r *ratingRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.Rating, error) {
	var ratings []domain.Rating
	query := `SELECT * FROM ratings WHERE complaint_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &ratings, query, complaintID)
	return ratings, err
}

func (r *ratingRepository) ListWithFeedback(ctx context.Context, params domain.PaginationParams) ([]domain.Rating, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM ratings WHERE feedback IS NOT NULL AND feedback <> ''`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM ratings
		WHERE feedback IS NOT NULL AND feedback <> ''
		%s LIMIT $1 OFFSET $2`, orderClause(params, ratingSortColumns, "created_at"))

	var ratings []domain.Rating
	err := r.db.SelectContext(ctx, &ratings, query, params.Limit, params.Offset())
	return ratings, total, err
}

func (r *ratingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	query := `
		UPDATE ratings
		SET rating = $2, feedback = $3, updated_at = NOW()
		WHERE rating_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		rating.ID, rating.Rating, rating.Feedback,
	).Scan(&rating.UpdatedAt)
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM ratings WHERE rating_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *ratingRepository) AverageByComplaint(ctx context.Context, complaintID uuid.UUID) (float64, int64, error) {
	var avg sql.NullFloat64
	var count int64
	query := `SELECT AVG(rating), COUNT(*) FROM ratings WHERE complaint_id = $1`

	row := r.db.QueryRowxContext(ctx, query, complaintID)
	if err := row.Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}

// Statistics aggregates the whole table when userID is nil, otherwise only
// that user's ratings.
func (r *ratingRepository) Statistics(ctx context.Context, userID *uuid.UUID) (*domain.RatingStatistics, error) {
	stats := &domain.RatingStatistics{
		RatingDistribution: make(map[string]int64),
	}

	scope := ""
	joinScope := ""
	args := []interface{}{}
	if userID != nil {
		scope = " WHERE user_id = $1"
		joinScope = " AND r.user_id = $1"
		args = append(args, *userID)
	}

	var avg sql.NullFloat64
	row := r.db.QueryRowxContext(ctx, `SELECT COUNT(*), AVG(rating) FROM ratings`+scope, args...)
	if err := row.Scan(&stats.TotalRatings, &avg); err != nil {
		return nil, err
	}
	stats.AverageRating = avg.Float64

	rows, err := r.db.QueryxContext(ctx, `SELECT rating, COUNT(*) FROM ratings`+scope+` GROUP BY rating`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		stats.RatingDistribution[fmt.Sprintf("%d_stars", rating)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topQuery := `
		SELECT r.rating, r.feedback, c.public_id, c.title
		FROM ratings r
		JOIN complaints c ON c.complaint_id = r.complaint_id
		WHERE r.rating >= 4` + joinScope + `
		ORDER BY r.rating DESC, r.created_at DESC
		LIMIT 5`
	if err := r.db.SelectContext(ctx, &stats.TopRatedComplaints, topQuery, args...); err != nil {
		return nil, err
	}

	lowQuery := `
		SELECT r.rating, r.feedback, c.public_id, c.title
		FROM ratings r
		JOIN complaints c ON c.complaint_id = r.complaint_id
		WHERE r.rating <= 2` + joinScope + `
		ORDER BY r.rating ASC, r.created_at DESC
		LIMIT 5`
	err = r.db.SelectContext(ctx, &stats.LowRatedComplaints, lowQuery, args...)
	return stats, err
}
