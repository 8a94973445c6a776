package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"shakwa-backend/internal/domain"
)

var complaintLogSortColumns = map[string]string{
	"createdAt":  "created_at",
	"actionType": "action_type",
}

type ComplaintLogRepository interface {
	Create(ctx context.Context, log *domain.ComplaintLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintLog, error)
	List(ctx context.Context, filter domain.ComplaintLogFilter, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error)
	ListByComplaint(ctx context.Context, complaintID uuid.UUID, ascending bool) ([]domain.ComplaintLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error)
	Statistics(ctx context.Context) (*domain.ComplaintLogStatistics, error)
}

type complaintLogRepository struct {
	db *sqlx.DB
}

func NewComplaintLogRepository(db *sqlx.DB) ComplaintLogRepository {
	return &complaintLogRepository{db: db}
}

func (r *complaintLogRepository) Create(ctx context.Context, log *domain.ComplaintLog) error {
	query := `
		INSERT INTO complaint_logs (log_id, complaint_id, action_by, action_type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ComplaintID, log.ActionBy, log.ActionType, log.Description,
	).Scan(&log.CreatedAt)
}

func (r *complaintLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintLog, error) {
	var log domain.ComplaintLog
	query := `SELECT * FROM complaint_logs WHERE log_id = $1`

	err := r.db.GetContext(ctx, &log, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *complaintLogRepository) List(ctx context.Context, filter domain.ComplaintLogFilter, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if filter.ComplaintID != nil {
		args = append(args, *filter.ComplaintID)
		where += fmt.Sprintf(" AND complaint_id = $%d", len(args))
	}
	if filter.ComplaintIDs != nil {
		args = append(args, pq.Array(filter.ComplaintIDs))
		where += fmt.Sprintf(" AND complaint_id = ANY($%d)", len(args))
	}
	if filter.ActionBy != nil {
		args = append(args, *filter.ActionBy)
		where += fmt.Sprintf(" AND action_by = $%d", len(args))
	}
	if filter.ActionType != "" {
		args = append(args, filter.ActionType)
		where += fmt.Sprintf(" AND action_type = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (description ILIKE $%d OR action_type ILIKE $%d)", n, n)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaint_logs WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM complaint_logs WHERE %s %s LIMIT $%d OFFSET $%d`,
		where, orderClause(params, complaintLogSortColumns, "created_at"), len(args)-1, len(args))

	var logs []domain.ComplaintLog
	err := r.db.SelectContext(ctx, &logs, query, args...)
	return logs, total, err
}

func (r *complaintLogRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID, ascending bool) ([]domain.ComplaintLog, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT * FROM complaint_logs WHERE complaint_id = $1 ORDER BY created_at %s`, direction)

	var logs []domain.ComplaintLog
	err := r.db.SelectContext(ctx, &logs, query, complaintID)
	return logs, err
}

func (r *complaintLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.ComplaintLog, int64, error) {
	return r.List(ctx, domain.ComplaintLogFilter{ActionBy: &userID}, params)
}

func (r *complaintLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM complaint_logs WHERE log_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *complaintLogRepository) DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error) {
	query := `DELETE FROM complaint_logs WHERE complaint_id = $1`
	result, err := r.db.ExecContext(ctx, query, complaintID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *complaintLogRepository) Statistics(ctx context.Context) (*domain.ComplaintLogStatistics, error) {
	stats := &domain.ComplaintLogStatistics{
		LogsByActionType: make(map[string]int64),
	}

	if err := r.db.GetContext(ctx, &stats.TotalLogs, `SELECT COUNT(*) FROM complaint_logs`); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT action_type, COUNT(*) FROM complaint_logs GROUP BY action_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var actionType string
		var count int64
		if err := rows.Scan(&actionType, &count); err != nil {
			return nil, err
		}
		stats.LogsByActionType[actionType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topQuery := `
		SELECT l.action_by, u.full_name, COUNT(*) AS count
		FROM complaint_logs l
		JOIN users u ON u.user_id = l.action_by
		GROUP BY l.action_by, u.full_name
		ORDER BY count DESC
		LIMIT 5`
	err = r.db.SelectContext(ctx, &stats.TopActors, topQuery)
	return stats, err
}
