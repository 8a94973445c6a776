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

type ComplaintLogHandler struct {
	logService service.ComplaintLogService
}

func NewComplaintLogHandler(logService service.ComplaintLogService) *ComplaintLogHandler {
	return &ComplaintLogHandler{logService: logService}
}

func (h *ComplaintLogHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateComplaintLogInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	log, err := h.logService.Create(c.Context(), actor, input)
	if err != nil {
		return mapLogError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *ComplaintLogHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid log ID")
	}

	actor := middleware.GetCurrentUser(c)
	log, err := h.logService.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapLogError(err)
	}
	return c.Status(fiber.StatusOK).JSON(log)
}

func (h *ComplaintLogHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.ComplaintLogFilter{
		Search:     c.Query("search"),
		ActionType: c.Query("action_type"),
	}
	if complaintStr := c.Query("complaint_id"); complaintStr != "" {
		complaintID, err := uuid.Parse(complaintStr)
		if err != nil {
			return middleware.BadRequest("Invalid complaint ID")
		}
		filter.ComplaintID = &complaintID
	}
	if actionByStr := c.Query("action_by"); actionByStr != "" {
		actionBy, err := uuid.Parse(actionByStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		filter.ActionBy = &actionBy
	}

	actor := middleware.GetCurrentUser(c)
	result, err := h.logService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ComplaintLogHandler) ListByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	ascending := c.Query("order") == "asc"
	actor := middleware.GetCurrentUser(c)

	logs, err := h.logService.ListByComplaint(c.Context(), actor, complaintID, ascending)
	if err != nil {
		return mapLogError(err)
	}
	if logs == nil {
		logs = []domain.ComplaintLog{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": logs})
}

// Timeline returns a complaint's history oldest-first, the one list that
// inverts the default descending order.
func (h *ComplaintLogHandler) Timeline(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	actor := middleware.GetCurrentUser(c)
	logs, err := h.logService.ListByComplaint(c.Context(), actor, complaintID, true)
	if err != nil {
		return mapLogError(err)
	}
	if logs == nil {
		logs = []domain.ComplaintLog{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": logs})
}

func (h *ComplaintLogHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	params := getPaginationParams(c)
	actor := middleware.GetCurrentUser(c)

	result, err := h.logService.ListByUser(c.Context(), actor, userID, params)
	if err != nil {
		return mapLogError(err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ComplaintLogHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid log ID")
	}

	if err := h.logService.Delete(c.Context(), id); err != nil {
		return mapLogError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "log.deleted"),
	})
}

func (h *ComplaintLogHandler) DeleteByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	deleted, err := h.logService.DeleteByComplaint(c.Context(), complaintID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "logs.deleted"),
		"deleted": deleted,
	})
}

func (h *ComplaintLogHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.logService.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func mapLogError(err error) error {
	switch {
	case errors.Is(err, service.ErrLogNotFound):
		return middleware.NotFound("Log not found")
	case errors.Is(err, service.ErrComplaintNotFound):
		return middleware.NotFound("Complaint not found")
	case errors.Is(err, service.ErrAccessDenied):
		return middleware.Forbidden("Access denied")
	default:
		return err
	}
}
