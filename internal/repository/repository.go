package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"shakwa-backend/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Category     CategoryRepository
	Complaint    ComplaintRepository
	ComplaintLog ComplaintLogRepository
	Notification NotificationRepository
	Rating       RatingRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Category:     NewCategoryRepository(db),
		Complaint:    NewComplaintRepository(db),
		ComplaintLog: NewComplaintLogRepository(db),
		Notification: NewNotificationRepository(db),
		Rating:       NewRatingRepository(db),
	}
}

// orderClause maps a client-supplied sort field to a whitelisted column.
// Unknown fields fall back to the entity default so user input never reaches
// the ORDER BY clause directly.
func orderClause(params domain.PaginationParams, columns map[string]string, fallback string) string {
	col, ok := columns[params.SortBy]
	if !ok {
		col = fallback
	}
	dir := "DESC"
	if params.SortOrder == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}
