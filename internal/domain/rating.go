package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a post-resolution satisfaction score. At most one rating may
// exist per (complaint, user) pair.
type Rating struct {
	ID          uuid.UUID `json:"id" db:"rating_id"`
	ComplaintID uuid.UUID `json:"complaint_id" db:"complaint_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Rating      int       `json:"rating" db:"rating"`
	Feedback    *string   `json:"feedback" db:"feedback"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateRatingInput struct {
	ComplaintID uuid.UUID `json:"complaint_id" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Feedback    *string   `json:"feedback" validate:"omitempty,max=500"`
}

type UpdateRatingInput struct {
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,max=500"`
}

type RatingFilter struct {
	Search      string
	ComplaintID *uuid.UUID
	UserID      *uuid.UUID
	Rating      *int
	MinRating   *int
	MaxRating   *int
}

// RatedComplaint joins a rating with its complaint's public identifier for
// the statistics top/bottom lists.
type RatedComplaint struct {
	Rating            int     `json:"rating" db:"rating"`
	Feedback          *string `json:"feedback" db:"feedback"`
	ComplaintPublicID string  `json:"complaint_id" db:"public_id"`
	ComplaintTitle    string  `json:"title" db:"title"`
}

type RatingStatistics struct {
	TotalRatings       int64            `json:"total_ratings"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	TopRatedComplaints []RatedComplaint `json:"top_rated_complaints"`
	LowRatedComplaints []RatedComplaint `json:"low_rated_complaints"`
}
