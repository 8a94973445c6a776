package handler

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/middleware"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/pkg/validation"
	"shakwa-backend/internal/service"
)

const maxComplaintFileSize = 5 * 1024 * 1024

var allowedComplaintExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type ComplaintHandler struct {
	complaintService service.ComplaintService
}

func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Create accepts multipart form data so a complaint can be filed together
// with its evidence images in one request.
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	input := domain.CreateComplaintInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Priority:    domain.ComplaintPriority(c.FormValue("priority")),
	}
	if location := c.FormValue("location"); location != "" {
		input.Location = &location
	}
	if categoryStr := c.FormValue("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return middleware.BadRequest("Invalid category ID")
		}
		input.CategoryID = &categoryID
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	files, err := complaintFormFiles(c)
	if err != nil {
		return err
	}

	images, closeAll, err := openUploads(files)
	if err != nil {
		return err
	}
	defer closeAll()

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.Create(c.Context(), actor, input, images)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(complaint)
}

func (h *ComplaintHandler) GetByID(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	idParam := c.Params("id")

	// Public ids look like CMP-20250101-000001; anything else must be a UUID.
	if strings.HasPrefix(idParam, "CMP-") {
		complaint, err := h.complaintService.GetByPublicID(c.Context(), actor, idParam)
		if err != nil {
			return mapComplaintError(err)
		}
		return c.Status(fiber.StatusOK).JSON(complaint)
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	complaint, err := h.complaintService.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.ComplaintFilter{Search: c.Query("search")}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			return middleware.BadRequest("Invalid category ID")
		}
		filter.CategoryID = &categoryID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ComplaintStatus(statusStr)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		filter.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := domain.ComplaintPriority(priorityStr)
		if !priority.IsValid() {
			return middleware.BadRequest("Invalid priority")
		}
		filter.Priority = &priority
	}
	if isReadStr := c.Query("is_read"); isReadStr != "" {
		isRead := isReadStr == "true"
		filter.IsRead = &isRead
	}
	if userStr := c.Query("user_id"); userStr != "" {
		userID, err := uuid.Parse(userStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		filter.UserID = &userID
	}

	actor := middleware.GetCurrentUser(c)
	result, err := h.complaintService.List(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns the caller's own complaints regardless of role.
func (h *ComplaintHandler) ListMine(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.ComplaintFilter{Search: c.Query("search")}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ComplaintStatus(statusStr)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		filter.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := domain.ComplaintPriority(priorityStr)
		if !priority.IsValid() {
			return middleware.BadRequest("Invalid priority")
		}
		filter.Priority = &priority
	}

	actor := middleware.GetCurrentUser(c)
	result, err := h.complaintService.ListMine(c.Context(), actor, filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ComplaintHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	complaint, err := h.complaintService.MarkRead(c.Context(), id)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.UpdateComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.Update(c.Context(), actor, id, input)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.UpdateStatus(c.Context(), actor, id, input)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.AssignComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.Assign(c.Context(), actor, id, input.AdminID)
	if err != nil {
		if errors.Is(err, service.ErrAssigneeNotAdmin) {
			return middleware.BadRequest("Assignee must be an administrator")
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return middleware.NotFound("Assignee not found")
		}
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) UploadImages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	files, err := complaintFormFiles(c)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return middleware.BadRequest("At least one image is required")
	}

	images, closeAll, err := openUploads(files)
	if err != nil {
		return err
	}
	defer closeAll()

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.UploadImages(c.Context(), actor, id, images)
	if err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input struct {
		ImageURL string `json:"image_url" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	complaint, err := h.complaintService.DeleteImage(c.Context(), actor, id, input.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			return middleware.NotFound("Image not found on complaint")
		}
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(complaint)
}

func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.complaintService.Delete(c.Context(), actor, id); err != nil {
		return mapComplaintError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "complaint.deleted"),
	})
}

func (h *ComplaintHandler) Statistics(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)
	stats, err := h.complaintService.Statistics(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func complaintFormFiles(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > 5 {
		return nil, middleware.BadRequest("A maximum of 5 images is allowed")
	}
	for _, file := range files {
		if file.Size > maxComplaintFileSize {
			return nil, middleware.BadRequest("Each file must be less than 5MB")
		}
		if !allowedComplaintExts[fileExt(file.Filename)] {
			return nil, middleware.BadRequest("Only jpg, jpeg, png and pdf files are allowed")
		}
	}
	return files, nil
}

func openUploads(files []*multipart.FileHeader) ([]service.ImageUpload, func(), error) {
	var images []service.ImageUpload
	var readers []multipart.File

	closeAll := func() {
		for _, r := range readers {
			r.Close()
		}
	}

	for _, file := range files {
		reader, err := file.Open()
		if err != nil {
			closeAll()
			return nil, nil, middleware.BadRequest("Failed to read file")
		}
		readers = append(readers, reader)

		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		images = append(images, service.ImageUpload{
			FileName: file.Filename,
			MimeType: mimeType,
			Size:     file.Size,
			Reader:   reader,
		})
	}
	return images, closeAll, nil
}

func mapComplaintError(err error) error {
	switch {
	case errors.Is(err, service.ErrComplaintNotFound):
		return middleware.NotFound("Complaint not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		return middleware.BadRequest("Category not found")
	case errors.Is(err, service.ErrAccessDenied):
		return middleware.Forbidden("Access denied")
	case errors.Is(err, service.ErrTooManyImages):
		return middleware.BadRequest("A maximum of 5 images is allowed")
	default:
		return err
	}
}
