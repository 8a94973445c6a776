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

var notificationSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"type":      "type",
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error)
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.Notification, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	Update(ctx context.Context, notification *domain.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error)
	Statistics(ctx context.Context, userID *uuid.UUID) (*domain.NotificationStatistics, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, user_id, complaint_id, message, type,
			old_status, new_status, assigned_to, note, file
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		notification.ID, notification.UserID, notification.ComplaintID,
		notification.Message, notification.Type, notification.OldStatus,
		notification.NewStatus, notification.AssignedTo, notification.Note,
		notification.File,
	).Scan(&notification.CreatedAt, &notification.UpdatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`

	err := r.db.GetContext(ctx, &notification, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) List(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.ComplaintID != nil {
		args = append(args, *filter.ComplaintID)
		where += fmt.Sprintf(" AND complaint_id = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.NewStatus != nil {
		args = append(args, *filter.NewStatus)
		where += fmt.Sprintf(" AND new_status = $%d", len(args))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		where += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND message ILIKE $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`SELECT * FROM notifications WHERE %s %s LIMIT $%d OFFSET $%d`,
		where, orderClause(params, notificationSortColumns, "created_at"), len(args)-1, len(args))

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

func (r *notificationRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := `SELECT * FROM notifications WHERE complaint_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &notifications, query, complaintID)
	return notifications, err
}

func (r *notificationRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	return notifications, err
}

func (r *notificationRepository) Update(ctx context.Context, notification *domain.Notification) error {
	query := `
		UPDATE notifications
		SET message = :message, type = :type, note = :note, updated_at = NOW()
		WHERE notification_id = :notification_id`

	result, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE notification_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) DeleteByComplaint(ctx context.Context, complaintID uuid.UUID) (int64, error) {
	query := `DELETE FROM notifications WHERE complaint_id = $1`
	result, err := r.db.ExecContext(ctx, query, complaintID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) Statistics(ctx context.Context, userID *uuid.UUID) (*domain.NotificationStatistics, error) {
	stats := &domain.NotificationStatistics{
		ByType:   make(map[string]int64),
		ByStatus: make(map[string]int64),
	}

	// userID narrows every aggregate to a single recipient's feed.
	scope := ""
	args := []interface{}{}
	if userID != nil {
		scope = " WHERE user_id = $1"
		args = append(args, *userID)
	}

	if err := r.db.GetContext(ctx, &stats.TotalNotifications, `SELECT COUNT(*) FROM notifications`+scope, args...); err != nil {
		return nil, err
	}

	typeRows, err := r.db.QueryxContext(ctx, `SELECT type, COUNT(*) FROM notifications`+scope+` GROUP BY type`, args...)
	if err != nil {
		return nil, err
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var notifType string
		var count int64
		if err := typeRows.Scan(&notifType, &count); err != nil {
			return nil, err
		}
		stats.ByType[notifType] = count
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}

	statusScope := "WHERE new_status <> ''"
	if userID != nil {
		statusScope += " AND user_id = $1"
	}
	statusRows, err := r.db.QueryxContext(ctx,
		`SELECT new_status, COUNT(*) FROM notifications `+statusScope+` GROUP BY new_status`, args...)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var status string
		var count int64
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	return stats, statusRows.Err()
}
