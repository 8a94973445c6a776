package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/middleware"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/pkg/validation"
	"shakwa-backend/internal/service"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRatingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	rating, err := h.ratingService.Create(c.Context(), actor, input)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRated) {
			return middleware.Conflict("Complaint already rated")
		}
		return mapRatingError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

func (h *RatingHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid rating ID")
	}

	actor := middleware.GetCurrentUser(c)
	rating, err := h.ratingService.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapRatingError(err)
	}
	return c.Status(fiber.StatusOK).JSON(rating)
}

func (h *RatingHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.RatingFilter{Search: c.Query("search")}
	if complaintStr := c.Query("complaint_id"); complaintStr != "" {
		complaintID, err := uuid.Parse(complaintStr)
		if err != nil {
			return middleware.BadRequest("Invalid complaint ID")
		}
		filter.ComplaintID = &complaintID
	}
	if ratingStr := c.Query("rating"); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			return middleware.BadRequest("Rating must be between 1 and 5")
		}
		filter.Rating = &rating
	}
	if minStr := c.Query("min_rating"); minStr != "" {
		min, err := strconv.Atoi(minStr)
		if err != nil {
			return middleware.BadRequest("Invalid min rating")
		}
		filter.MinRating = &min
	}
	if maxStr := c.Query("max_rating"); maxStr != "" {
		max, err := strconv.Atoi(maxStr)
		if err != nil {
			return middleware.BadRequest("Invalid max rating")
		}
		filter.MaxRating = &max
	}

	actor := middleware.GetCurrentUser(c)
	result, err := h.ratingService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns the caller's own ratings whatever their role.
func (h *RatingHandler) ListMine(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	actor := middleware.GetCurrentUser(c)

	filter := domain.RatingFilter{UserID: &actor.ID}
	result, err := h.ratingService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RatingHandler) HasRated(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	actor := middleware.GetCurrentUser(c)
	rated, err := h.ratingService.HasRated(c.Context(), actor, complaintID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"has_rated": rated})
}

func (h *RatingHandler) ListByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("complaintId"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	actor := middleware.GetCurrentUser(c)
	ratings, err := h.ratingService.ListByComplaint(c.Context(), actor, complaintID)
	if err != nil {
		return mapRatingError(err)
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}

	average, count, err := h.ratingService.AverageByComplaint(c.Context(), complaintID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items":   ratings,
		"average": average,
		"count":   count,
	})
}

func (h *RatingHandler) ListWithFeedback(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.ratingService.ListWithFeedback(c.Context(), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RatingHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid rating ID")
	}

	var input domain.UpdateRatingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	rating, err := h.ratingService.Update(c.Context(), actor, id, input)
	if err != nil {
		return mapRatingError(err)
	}
	return c.Status(fiber.StatusOK).JSON(rating)
}

func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid rating ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.ratingService.Delete(c.Context(), actor, id); err != nil {
		return mapRatingError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "rating.deleted"),
	})
}

func (h *RatingHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.ratingService.Statistics(c.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func mapRatingError(err error) error {
	switch {
	case errors.Is(err, service.ErrRatingNotFound):
		return middleware.NotFound("Rating not found")
	case errors.Is(err, service.ErrComplaintNotFound):
		return middleware.NotFound("Complaint not found")
	case errors.Is(err, service.ErrAccessDenied):
		return middleware.Forbidden("Access denied")
	default:
		return err
	}
}
