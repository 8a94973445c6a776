package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifStatusUpdate NotificationType = "status_update"
	NotifNewComment   NotificationType = "new_comment"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifStatusUpdate, NotifNewComment:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"notification_id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	ComplaintID uuid.UUID        `json:"complaint_id" db:"complaint_id"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type"`
	OldStatus   ComplaintStatus  `json:"old_status" db:"old_status"`
	NewStatus   ComplaintStatus  `json:"new_status" db:"new_status"`
	AssignedTo  *uuid.UUID       `json:"assigned_to" db:"assigned_to"`
	Note        *string          `json:"note" db:"note"`
	File        *string          `json:"file" db:"file"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

type CreateNotificationInput struct {
	UserID      uuid.UUID        `json:"user_id" validate:"required"`
	ComplaintID uuid.UUID        `json:"complaint_id" validate:"required"`
	Message     string           `json:"message" validate:"required"`
	Type        NotificationType `json:"type" validate:"required,oneof=status_update new_comment"`
	OldStatus   ComplaintStatus  `json:"old_status" validate:"omitempty,oneof=pending in_progress resolved closed"`
	NewStatus   ComplaintStatus  `json:"new_status" validate:"omitempty,oneof=pending in_progress resolved closed"`
	AssignedTo  *uuid.UUID       `json:"assigned_to"`
	Note        *string          `json:"note"`
	File        *string          `json:"file"`
}

type UpdateNotificationInput struct {
	Message *string           `json:"message,omitempty" validate:"omitempty,min=1"`
	Type    *NotificationType `json:"type,omitempty" validate:"omitempty,oneof=status_update new_comment"`
	Note    *string           `json:"note,omitempty"`
}

type NotificationFilter struct {
	Search      string
	UserID      *uuid.UUID
	ComplaintID *uuid.UUID
	Type        *NotificationType
	NewStatus   *ComplaintStatus
	AssignedTo  *uuid.UUID
}

type NotificationStatistics struct {
	TotalNotifications int64            `json:"total_notifications"`
	ByType             map[string]int64 `json:"by_type"`
	ByStatus           map[string]int64 `json:"by_status"`
}
