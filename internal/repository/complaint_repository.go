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

var complaintSortColumns = map[string]string{
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
	"title":     "c.title",
	"status":    "c.status",
	"priority":  "c.priority",
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	NextSequence(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Complaint, error)
	List(ctx context.Context, filter domain.ComplaintFilter, params domain.PaginationParams) ([]domain.Complaint, int64, error)
	IDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, complaint *domain.Complaint) error
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context, userID *uuid.UUID) (*domain.ComplaintStatistics, error)
}

type complaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// NextSequence draws from a global counter that never resets, so public ids
// stay unique even across days.
func (r *complaintRepository) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.GetContext(ctx, &seq, `SELECT nextval('complaint_public_seq')`)
	return seq, err
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	query := `
		INSERT INTO complaints (
			complaint_id, public_id, user_id, category_id, title, description,
			location, status, priority, images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING is_read, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		complaint.ID, complaint.PublicID, complaint.UserID, complaint.CategoryID,
		complaint.Title, complaint.Description, complaint.Location,
		complaint.Status, complaint.Priority, complaint.Images,
	).Scan(&complaint.IsRead, &complaint.CreatedAt, &complaint.UpdatedAt)
	if IsUniqueViolation(err) {
		return ErrDuplicatePublicID
	}
	return err
}

const complaintSelect = `
	SELECT c.complaint_id, c.public_id, c.user_id, c.category_id, c.title,
	       c.description, c.location, c.status, c.priority, c.images,
	       c.assigned_to, c.resolved_at, c.closed_at, c.is_read,
	       c.created_at, c.updated_at,
	       u.full_name AS owner_name, u.national_id AS owner_national_id,
	       u.user_type AS owner_type,
	       cat.name AS category_name, cat.description AS category_description,
	       a.full_name AS assignee_name, a.user_type AS assignee_type
	FROM complaints c
	JOIN users u ON u.user_id = c.user_id
	LEFT JOIN complaint_categories cat ON cat.category_id = c.category_id
	LEFT JOIN users a ON a.user_id = c.assigned_to`

func scanComplaint(rows *sqlx.Rows) (*domain.Complaint, error) {
	var c domain.Complaint
	var ownerName, ownerNationalID, ownerType string
	var categoryName, categoryDescription sql.NullString
	var assigneeName, assigneeType sql.NullString

	err := rows.Scan(
		&c.ID, &c.PublicID, &c.UserID, &c.CategoryID, &c.Title,
		&c.Description, &c.Location, &c.Status, &c.Priority, &c.Images,
		&c.AssignedTo, &c.ResolvedAt, &c.ClosedAt, &c.IsRead,
		&c.CreatedAt, &c.UpdatedAt,
		&ownerName, &ownerNationalID, &ownerType,
		&categoryName, &categoryDescription,
		&assigneeName, &assigneeType,
	)
	if err != nil {
		return nil, err
	}

	c.Owner = &domain.UserSummary{
		ID:         c.UserID,
		FullName:   ownerName,
		NationalID: &ownerNationalID,
		UserType:   domain.UserType(ownerType),
	}
	if c.CategoryID != nil && categoryName.Valid {
		c.Category = &domain.CategorySummary{
			ID:          *c.CategoryID,
			Name:        categoryName.String,
			Description: categoryDescription.String,
		}
	}
	if c.AssignedTo != nil && assigneeName.Valid {
		c.Assignee = &domain.UserSummary{
			ID:       *c.AssignedTo,
			FullName: assigneeName.String,
			UserType: domain.UserType(assigneeType.String),
		}
	}
	return &c, nil
}

func (r *complaintRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Complaint, error) {
	rows, err := r.db.QueryxContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanComplaint(rows)
}

func (r *complaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	return r.getOne(ctx, complaintSelect+` WHERE c.complaint_id = $1`, id)
}

func (r *complaintRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Complaint, error) {
	return r.getOne(ctx, complaintSelect+` WHERE c.public_id = $1`, publicID)
}

func (r *complaintRepository) List(ctx context.Context, filter domain.ComplaintFilter, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	params.Validate()

	where := "TRUE"
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND c.user_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND c.category_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		where += fmt.Sprintf(" AND c.priority = $%d", len(args))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		where += fmt.Sprintf(" AND c.is_read = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (c.title ILIKE $%d OR c.description ILIKE $%d OR c.location ILIKE $%d OR c.public_id ILIKE $%d)", n, n, n, n)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaints c WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`%s WHERE %s %s LIMIT $%d OFFSET $%d`,
		complaintSelect, where, orderClause(params, complaintSortColumns, "c.created_at"),
		len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, *c)
	}
	return complaints, total, rows.Err()
}

func (r *complaintRepository) IDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT complaint_id FROM complaints WHERE user_id = $1`

	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	query := `
		UPDATE complaints
		SET category_id = :category_id, title = :title, description = :description,
		    location = :location, status = :status, priority = :priority,
		    images = :images, assigned_to = :assigned_to,
		    resolved_at = :resolved_at, closed_at = :closed_at,
		    is_read = :is_read, updated_at = NOW()
		WHERE complaint_id = :complaint_id`

	result, err := r.db.NamedExecContext(ctx, query, complaint)
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

func (r *complaintRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE complaints SET is_read = TRUE, updated_at = NOW() WHERE complaint_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *complaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM complaints WHERE complaint_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *complaintRepository) Statistics(ctx context.Context, userID *uuid.UUID) (*domain.ComplaintStatistics, error) {
	where := "TRUE"
	args := []interface{}{}
	if userID != nil {
		args = append(args, *userID)
		where = fmt.Sprintf("user_id = $%d", len(args))
	}

	stats := &domain.ComplaintStatistics{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	totalQuery := fmt.Sprintf(`
		SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE NOT is_read) AS unread
		FROM complaints WHERE %s`, where)
	row := r.db.QueryRowxContext(ctx, totalQuery, args...)
	if err := row.Scan(&stats.TotalComplaints, &stats.UnreadCount); err != nil {
		return nil, err
	}

	statusQuery := fmt.Sprintf(`SELECT status, COUNT(*) FROM complaints WHERE %s GROUP BY status`, where)
	rows, err := r.db.QueryxContext(ctx, statusQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	priorityQuery := fmt.Sprintf(`SELECT priority, COUNT(*) FROM complaints WHERE %s GROUP BY priority`, where)
	pRows, err := r.db.QueryxContext(ctx, priorityQuery, args...)
	if err != nil {
		return nil, err
	}
	defer pRows.Close()
	for pRows.Next() {
		var priority string
		var count int64
		if err := pRows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		stats.ByPriority[priority] = count
	}
	return stats, pRows.Err()
}

// ErrDuplicatePublicID reports a public id collision on insert, which only
// happens if the sequence was tampered with.
var ErrDuplicatePublicID = errors.New("duplicate complaint public id")

// IsUniqueViolation reports whether err is a Postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
