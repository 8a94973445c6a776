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

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	category, err := h.categoryService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			return middleware.Conflict("Category name already exists")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) BulkCreate(c *fiber.Ctx) error {
	var input struct {
		Categories []domain.CreateCategoryInput `json:"categories" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	result, err := h.categoryService.BulkCreate(c.Context(), input.Categories)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid category ID")
	}

	category, err := h.categoryService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return middleware.NotFound("Category not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CategoryHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return middleware.BadRequest("Category name is required")
	}

	category, err := h.categoryService.GetByName(c.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return middleware.NotFound("Category not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if c.Query("all") == "true" {
		categories, err := h.categoryService.ListAll(c.Context())
		if err != nil {
			return err
		}
		if categories == nil {
			categories = []domain.ComplaintCategory{}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": categories})
	}

	params := getPaginationParams(c)
	result, err := h.categoryService.List(c.Context(), c.Query("search"), params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid category ID")
	}

	var input domain.UpdateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	category, err := h.categoryService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return middleware.NotFound("Category not found")
		}
		if errors.Is(err, service.ErrCategoryExists) {
			return middleware.Conflict("Category name already exists")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid category ID")
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return middleware.NotFound("Category not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "category.deleted"),
	})
}

func (h *CategoryHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.categoryService.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
