package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/middleware"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/pkg/validation"
	"shakwa-backend/internal/service"
)

const maxProfileImageSize = 2 * 1024 * 1024

var allowedProfileImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	user, err := h.userService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrNationalIDExists) {
			return middleware.Conflict("National ID already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapUserError(err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) GetByNationalID(c *fiber.Ctx) error {
	nationalID := c.Params("nationalId")
	if nationalID == "" {
		return middleware.BadRequest("National ID is required")
	}

	user, err := h.userService.GetByNationalID(c.Context(), nationalID)
	if err != nil {
		return mapUserError(err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.UserFilter{Search: c.Query("search")}
	if userType := c.Query("user_type"); userType != "" {
		ut := domain.UserType(userType)
		if !ut.IsValid() {
			return middleware.BadRequest("Invalid user type")
		}
		filter.UserType = &ut
	}

	result, err := h.userService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	user, err := h.userService.Update(c.Context(), middleware.GetCurrentUser(c), id, input)
	if err != nil {
		return mapUserError(err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var input domain.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.userService.ChangePassword(c.Context(), actor, input); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return middleware.BadRequest("Old password is incorrect")
		}
		return mapUserError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "password.changed"),
	})
}

func (h *UserHandler) UploadProfileImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("Image file is required")
	}
	if file.Size > maxProfileImageSize {
		return middleware.BadRequest("Image size must be less than 2MB")
	}
	if !allowedProfileImageExts[fileExt(file.Filename)] {
		return middleware.BadRequest("Only jpg, jpeg and png images are allowed")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	user, err := h.userService.UploadProfileImage(c.Context(), middleware.GetCurrentUser(c), id, file.Filename, mimeType, file.Size, reader)
	if err != nil {
		return mapUserError(err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) DeleteProfileImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	user, err := h.userService.DeleteProfileImage(c.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		return mapUserError(err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false, "user.deactivated")
}

func (h *UserHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true, "")
}

func (h *UserHandler) setActive(c *fiber.Ctx, active bool, messageKey string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.userService.SetActive(c.Context(), actor, id, active); err != nil {
		if errors.Is(err, service.ErrSelfDeactivation) {
			return middleware.BadRequest("Cannot deactivate your own account")
		}
		return mapUserError(err)
	}

	message := "User activated successfully"
	if messageKey != "" {
		message = i18n.Translate(localeOf(c), messageKey)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	actor := middleware.GetCurrentUser(c)
	if err := h.userService.Delete(c.Context(), actor, id); err != nil {
		if errors.Is(err, service.ErrSelfDeactivation) {
			return middleware.BadRequest("Cannot delete your own account")
		}
		return mapUserError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": i18n.Translate(localeOf(c), "user.deleted"),
	})
}

func (h *UserHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.userService.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return middleware.NotFound("User not found")
	case errors.Is(err, service.ErrAccessDenied):
		return middleware.Forbidden("Access denied")
	default:
		return err
	}
}

func fileExt(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx:])
}

func localeOf(c *fiber.Ctx) string {
	if locale := c.Get("Accept-Language"); locale != "" {
		if idx := strings.IndexAny(locale, ",;-"); idx > 0 {
			return locale[:idx]
		}
		return locale
	}
	return "ar"
}
