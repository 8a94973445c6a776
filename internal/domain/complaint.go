package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
	PriorityUrgent ComplaintPriority = "urgent"
)

func (p ComplaintPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type Complaint struct {
	ID          uuid.UUID         `json:"id" db:"complaint_id"`
	PublicID    string            `json:"complaint_id" db:"public_id"`
	UserID      uuid.UUID         `json:"user_id" db:"user_id"`
	CategoryID  *uuid.UUID        `json:"category_id" db:"category_id"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Location    *string           `json:"location" db:"location"`
	Status      ComplaintStatus   `json:"status" db:"status"`
	Priority    ComplaintPriority `json:"priority" db:"priority"`
	Images      pq.StringArray    `json:"-" db:"images"`
	AssignedTo  *uuid.UUID        `json:"assigned_to" db:"assigned_to"`
	ResolvedAt  *time.Time        `json:"resolved_at" db:"resolved_at"`
	ClosedAt    *time.Time        `json:"closed_at" db:"closed_at"`
	IsRead      bool              `json:"is_read" db:"is_read"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`

	Owner     *UserSummary     `json:"owner,omitempty" db:"-"`
	Category  *CategorySummary `json:"category,omitempty" db:"-"`
	Assignee  *UserSummary     `json:"assignee,omitempty" db:"-"`
	ImageList []ComplaintImage `json:"images" db:"-"`
}

// ComplaintImage is the wire shape for a stored image reference. Legacy
// records hold bare filenames instead of full URLs; FileURL is always the
// resolvable form.
type ComplaintImage struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

type CreateComplaintInput struct {
	CategoryID  *uuid.UUID        `json:"category_id"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Location    *string           `json:"location"`
	Priority    ComplaintPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateComplaintInput struct {
	CategoryID  *uuid.UUID         `json:"category_id"`
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string            `json:"description,omitempty" validate:"omitempty,min=1"`
	Location    *string            `json:"location,omitempty"`
	Priority    *ComplaintPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateStatusInput struct {
	Status ComplaintStatus `json:"status" validate:"required,oneof=pending in_progress resolved closed"`
	Note   *string         `json:"note,omitempty"`
}

type AssignComplaintInput struct {
	AdminID uuid.UUID `json:"admin_id" validate:"required"`
}

type ComplaintFilter struct {
	Search     string
	UserID     *uuid.UUID
	CategoryID *uuid.UUID
	Status     *ComplaintStatus
	Priority   *ComplaintPriority
	IsRead     *bool
}

type ComplaintStatistics struct {
	TotalComplaints int64            `json:"total_complaints"`
	UnreadCount     int64            `json:"unread_count"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByPriority      map[string]int64 `json:"by_priority"`
}
