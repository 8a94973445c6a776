package handler

import (
	"github.com/gofiber/fiber/v2"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Category     *CategoryHandler
	Complaint    *ComplaintHandler
	ComplaintLog *ComplaintLogHandler
	Notification *NotificationHandler
	Rating       *RatingHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Category:     NewCategoryHandler(services.Category),
		Complaint:    NewComplaintHandler(services.Complaint),
		ComplaintLog: NewComplaintLogHandler(services.ComplaintLog),
		Notification: NewNotificationHandler(services.Notification),
		Rating:       NewRatingHandler(services.Rating),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if limit := c.QueryInt("limit", 10); limit > 0 {
		params.Limit = limit
	}
	if sortBy := c.Query("sortBy"); sortBy != "" {
		params.SortBy = sortBy
	}
	if sortOrder := c.Query("sortOrder"); sortOrder != "" {
		params.SortOrder = sortOrder
	}

	params.Validate()
	return params
}
