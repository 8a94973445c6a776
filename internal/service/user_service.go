package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shakwa-backend/internal/domain"
	"shakwa-backend/internal/repository"
)

var (
	ErrWrongPassword    = errors.New("old password is incorrect")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
)

type UserService interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, actor *domain.User, input domain.ChangePasswordInput) error
	UploadProfileImage(ctx context.Context, actor *domain.User, id uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.User, error)
	DeleteProfileImage(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error)
	SetActive(ctx context.Context, actor *domain.User, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Statistics(ctx context.Context) (*domain.UserStatistics, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  StorageService
}

func NewUserService(userRepo repository.UserRepository, storage StorageService) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *userService) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNationalIDExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userType := input.UserType
	if userType == "" {
		userType = domain.UserTypeCitizen
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	user := &domain.User{
		ID:           uuid.New(),
		NationalID:   input.NationalID,
		FullName:     input.FullName,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		UserType:     userType,
		IsActive:     active,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	if !canAccess(actor, id) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.resolveProfileImage(user)
	return user, nil
}

func (s *userService) GetByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	user, err := s.userRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.resolveProfileImage(user)
	return user, nil
}

func (s *userService) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Validate()

	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	for i := range users {
		s.resolveProfileImage(&users[i])
	}
	return domain.NewPaginatedResponse(users, params.Page, params.Limit, total), nil
}

func (s *userService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	if !canAccess(actor, id) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	// Only admins may change roles or reset passwords without the old one.
	if input.UserType != nil {
		if !actor.IsAdmin() {
			return nil, ErrAccessDenied
		}
		user.UserType = *input.UserType
	}
	if input.NewPassword != nil {
		if !actor.IsAdmin() {
			return nil, ErrAccessDenied
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.resolveProfileImage(user)
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor *domain.User, input domain.ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (s *userService) UploadProfileImage(ctx context.Context, actor *domain.User, id uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.User, error) {
	if !canAccess(actor, id) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fileURL, err := s.storage.Upload(ctx, "profiles", fileName, mimeType, fileSize, reader)
	if err != nil {
		return nil, err
	}

	if user.ProfileImage != nil {
		if err := s.storage.Remove(ctx, s.storage.PublicURL(*user.ProfileImage)); err != nil {
			fmt.Printf("Failed to remove old profile image for user %s: %v\n", user.ID, err)
		}
	}

	if err := s.userRepo.SetProfileImage(ctx, user.ID, &fileURL); err != nil {
		return nil, err
	}

	user.ProfileImage = &fileURL
	s.resolveProfileImage(user)
	return user, nil
}

func (s *userService) DeleteProfileImage(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	if !canAccess(actor, id) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.ProfileImage != nil {
		if err := s.storage.Remove(ctx, s.storage.PublicURL(*user.ProfileImage)); err != nil {
			fmt.Printf("Failed to remove profile image for user %s: %v\n", user.ID, err)
		}
	}

	if err := s.userRepo.SetProfileImage(ctx, user.ID, nil); err != nil {
		return nil, err
	}
	user.ProfileImage = nil
	user.ProfileImageURL = nil
	return user, nil
}

func (s *userService) SetActive(ctx context.Context, actor *domain.User, id uuid.UUID, active bool) error {
	if !active && actor.ID == id {
		return ErrSelfDeactivation
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.SetActive(ctx, id, active)
}

func (s *userService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if actor.ID == id {
		return ErrSelfDeactivation
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.ProfileImage != nil {
		if err := s.storage.Remove(ctx, s.storage.PublicURL(*user.ProfileImage)); err != nil {
			fmt.Printf("Failed to remove profile image for user %s: %v\n", user.ID, err)
		}
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) Statistics(ctx context.Context) (*domain.UserStatistics, error) {
	return s.userRepo.Statistics(ctx)
}

func (s *userService) resolveProfileImage(user *domain.User) {
	if user.ProfileImage != nil && *user.ProfileImage != "" {
		url := s.storage.PublicURL(*user.ProfileImage)
		user.ProfileImageURL = &url
	}
}
