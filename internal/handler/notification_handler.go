package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/middleware"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/pkg/validation"
	"shakwa-backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	notification, err := h.notificationService.Create(c.Context(), input)
	if err != nil {
		return mapNotificationError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	actor := middleware.GetCurrentUser(c)
	notification, err := h.notificationService.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapNotificationError(err)
	}
	return c.Status(fiber.StatusOK).JSON(notification)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.NotificationFilter{Search: c.Query("search")}
	if complaintStr := c.Query("complaint_id"); complaintStr != "" {
		complaintID, err := uuid.Parse(complaintStr)
		if err != nil {
			return middleware.BadRequest("Invalid complaint ID")
		}
		filter.ComplaintID = &complaintID
	}
	if typeStr := c.Query("type"); typeStr != "" {
		notifType := domain.NotificationType(typeStr)
		if !notifType.IsValid() {
			return middleware.BadRequest("Invalid notification type")
		}
		filter.Type = &notifType
	}
	if statusStr := c.Query("new_status"); statusStr != "" {
		status := domain.ComplaintStatus(statusStr)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		filter.NewStatus = &status
	}
	if userStr := c.Query("user_id"); userStr != "" {
		userID, err := uuid.Parse(userStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		filter.UserID = &userID
	}
	if assignedStr := c.Query("assigned_to"); assignedStr != "" {
		assignedTo, err := uuid.Parse(assignedStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		filter.AssignedTo = &assignedTo
	}

	actor := middleware.GetCurrentUser(c)
	result, err := h.notificationService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns the caller's own feed whatever their role.
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	actor := middleware.GetCurrentUser(c)

	filter := domain.NotificationFilter{UserID: &actor.ID}
	result, err := h.notificationService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) ListByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	actor := middleware.GetCurrentUser(c)
	notifications, err := h.notificationService.ListByComplaint(c.Context(), actor, complaintID)
	if err != nil {
		return mapNotificationError(err)
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": notifications})
}

func (h *NotificationHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	actor := middleware.GetCurrentUser(c)
	notifications, err := h.notificationService.ListRecent(c.Context(), actor, limit)
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": notifications})
}

func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	var input domain.UpdateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	notification, err := h.notificationService.Update(c.Context(), id, input)
	if err != nil {
		return mapNotificationError(err)
	}
	return c.Status(fiber.StatusOK).JSON(notification)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.notificationService.Delete(c.Context(), actor, id); err != nil {
		return mapNotificationError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "notification.deleted"),
	})
}

func (h *NotificationHandler) DeleteByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	deleted, err := h.notificationService.DeleteByComplaint(c.Context(), complaintID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "notifications.deleted"),
		"deleted": deleted,
	})
}

func (h *NotificationHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.notificationService.Statistics(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func mapNotificationError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		return middleware.NotFound("Notification not found")
	case errors.Is(err, service.ErrComplaintNotFound):
		return middleware.NotFound("Complaint not found")
	case errors.Is(err, service.ErrAccessDenied):
		return middleware.Forbidden("Access denied")
	default:
		return err
	}
}
