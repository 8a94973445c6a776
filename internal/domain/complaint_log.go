package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintLog is an append-only record of an action taken against a
// complaint. Rows are never updated.
type ComplaintLog struct {
	ID          uuid.UUID `json:"id" db:"log_id"`
	ComplaintID uuid.UUID `json:"complaint_id" db:"complaint_id"`
	ActionBy    uuid.UUID `json:"action_by" db:"action_by"`
	ActionType  string    `json:"action_type" db:"action_type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateComplaintLogInput struct {
	ComplaintID uuid.UUID `json:"complaint_id" validate:"required"`
	ActionType  string    `json:"action_type" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

type ComplaintLogFilter struct {
	Search      string
	ComplaintID *uuid.UUID
	// ComplaintIDs restricts results to the given complaints. Used to scope
	// citizens to logs of their own complaints.
	ComplaintIDs []uuid.UUID
	ActionBy     *uuid.UUID
	ActionType   string
}

type ActorLogCount struct {
	UserID   uuid.UUID `json:"user_id" db:"action_by"`
	FullName string    `json:"full_name" db:"full_name"`
	Count    int64     `json:"count" db:"count"`
}

type ComplaintLogStatistics struct {
	TotalLogs        int64            `json:"total_logs"`
	LogsByActionType map[string]int64 `json:"logs_by_action_type"`
	TopActors        []ActorLogCount  `json:"top_actors"`
}
