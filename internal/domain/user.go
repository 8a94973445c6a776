package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeCitizen UserType = "citizen"
	UserTypeAdmin   UserType = "admin"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeCitizen, UserTypeAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID              uuid.UUID `json:"id" db:"user_id"`
	NationalID      string    `json:"national_id" db:"national_id"`
	FullName        string    `json:"full_name" db:"full_name"`
	Phone           string    `json:"phone" db:"phone"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	UserType        UserType  `json:"user_type" db:"user_type"`
	ProfileImage    *string   `json:"-" db:"profile_image"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"-"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

func (u *User) HasRole(role string) bool {
	return string(u.UserType) == role
}

// UserSummary is the projection joined into complaint rows.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	NationalID *string   `json:"national_id,omitempty"`
	UserType   UserType  `json:"user_type"`
}

type RegisterInput struct {
	NationalID string   `json:"national_id" validate:"required,min=5"`
	FullName   string   `json:"full_name" validate:"required,min=2"`
	Phone      string   `json:"phone" validate:"required,min=6"`
	Password   string   `json:"password" validate:"required,min=8"`
	UserType   UserType `json:"user_type" validate:"omitempty,oneof=citizen admin"`
}

type LoginInput struct {
	NationalID string `json:"national_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserInput struct {
	NationalID string   `json:"national_id" validate:"required,min=5"`
	FullName   string   `json:"full_name" validate:"required,min=2"`
	Phone      string   `json:"phone" validate:"required,min=6"`
	Password   string   `json:"password" validate:"required,min=8"`
	UserType   UserType `json:"user_type" validate:"omitempty,oneof=citizen admin"`
	IsActive   *bool    `json:"is_active"`
}

type UpdateUserInput struct {
	FullName    *string   `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,min=6"`
	UserType    *UserType `json:"user_type,omitempty" validate:"omitempty,oneof=citizen admin"`
	NewPassword *string   `json:"new_password,omitempty" validate:"omitempty,min=8"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UserFilter struct {
	Search   string
	UserType *UserType
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserStatistics struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	CitizensCount int64 `json:"citizens_count"`
	AdminsCount   int64 `json:"admins_count"`
}
