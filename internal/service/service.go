package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"shakwa-backend/internal/config"
	"shakwa-backend/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Category     CategoryService
	Complaint    ComplaintService
	ComplaintLog ComplaintLogService
	Notification NotificationService
	Rating       RatingService
	Storage      StorageService
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	storageService := NewStorageService(minioClient, cfg)
	authService := NewAuthService(repos.User, cfg)
	userService := NewUserService(repos.User, storageService)
	categoryService := NewCategoryService(repos.Category)

	logService := NewComplaintLogService(repos.ComplaintLog, repos.Complaint)
	notificationService := NewNotificationService(repos.Notification, repos.Complaint, repos.User, cfg.Locale)

	// The log listener runs before the notification listener so the audit
	// trail is written first. Either may fail without affecting the other.
	dispatcher := NewDispatcher()
	dispatcher.Subscribe(logService)
	dispatcher.Subscribe(notificationService)

	complaintService := NewComplaintService(
		repos.Complaint,
		repos.Category,
		repos.User,
		storageService,
		dispatcher,
		redisClient,
	)

	ratingService := NewRatingService(repos.Rating, repos.Complaint)

	return &Services{
		Auth:         authService,
		User:         userService,
		Category:     categoryService,
		Complaint:    complaintService,
		ComplaintLog: logService,
		Notification: notificationService,
		Rating:       ratingService,
		Storage:      storageService,
	}
}
