package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"shakwa-backend/internal/config"
	"shakwa-backend/internal/handler"
	"shakwa-backend/internal/middleware"
	"shakwa-backend/internal/pkg/i18n"
	"shakwa-backend/internal/repository"
	"shakwa-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := i18n.LoadTranslations(cfg.LocalePath); err != nil {
		log.Printf("Warning: Failed to load translations: %v (falling back to built-in messages)", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Accept-Language",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Post("/", middleware.RequireRole("admin"), h.User.Create)
	users.Get("/", middleware.RequireRole("admin"), h.User.List)
	users.Get("/statistics", middleware.RequireRole("admin"), h.User.Statistics)
	users.Post("/change-password", h.User.ChangePassword)
	users.Get("/national/:nationalId", middleware.RequireRole("admin"), h.User.GetByNationalID)
	users.Get("/:id", h.User.GetByID)
	users.Put("/:id", h.User.Update)
	users.Post("/:id/profile-image", h.User.UploadProfileImage)
	users.Delete("/:id/profile-image", h.User.DeleteProfileImage)
	users.Patch("/:id/deactivate", middleware.RequireRole("admin"), h.User.Deactivate)
	users.Patch("/:id/activate", middleware.RequireRole("admin"), h.User.Activate)
	users.Delete("/:id", middleware.RequireRole("admin"), h.User.Delete)

	categories := protected.Group("/complaint-categories")
	categories.Post("/", middleware.RequireRole("admin"), h.Category.Create)
	categories.Post("/bulk", middleware.RequireRole("admin"), h.Category.BulkCreate)
	categories.Get("/", h.Category.List)
	categories.Get("/statistics", middleware.RequireRole("admin"), h.Category.Statistics)
	categories.Get("/name/:name", h.Category.GetByName)
	categories.Get("/:id", h.Category.GetByID)
	categories.Put("/:id", middleware.RequireRole("admin"), h.Category.Update)
	categories.Delete("/:id", middleware.RequireRole("admin"), h.Category.Delete)

	complaints := protected.Group("/complaints")
	complaints.Post("/", middleware.RequireRole("citizen"), h.Complaint.Create)
	complaints.Get("/", h.Complaint.List)
	complaints.Get("/my", h.Complaint.ListMine)
	complaints.Get("/statistics", h.Complaint.Statistics)
	complaints.Get("/:id", h.Complaint.GetByID)
	complaints.Patch("/:id/read", middleware.RequireRole("admin"), h.Complaint.MarkRead)
	complaints.Put("/:id", h.Complaint.Update)
	complaints.Patch("/:id/status", middleware.RequireRole("admin"), h.Complaint.UpdateStatus)
	complaints.Patch("/:id/assign", middleware.RequireRole("admin"), h.Complaint.Assign)
	complaints.Post("/:id/images", h.Complaint.UploadImages)
	complaints.Delete("/:id/images", h.Complaint.DeleteImage)
	complaints.Delete("/:id", h.Complaint.Delete)

	logs := protected.Group("/complaint-logs")
	logs.Post("/", h.ComplaintLog.Create)
	logs.Get("/", h.ComplaintLog.List)
	logs.Get("/statistics", middleware.RequireRole("admin"), h.ComplaintLog.Statistics)
	logs.Get("/complaint/:complaintId", h.ComplaintLog.ListByComplaint)
	logs.Get("/timeline/:complaintId", h.ComplaintLog.Timeline)
	logs.Get("/user/:userId", h.ComplaintLog.ListByUser)
	logs.Delete("/complaint/:complaintId", middleware.RequireRole("admin"), h.ComplaintLog.DeleteByComplaint)
	logs.Get("/:id", h.ComplaintLog.GetByID)
	logs.Delete("/:id", middleware.RequireRole("admin"), h.ComplaintLog.Delete)

	notifications := protected.Group("/notifications")
	notifications.Post("/", middleware.RequireRole("admin"), h.Notification.Create)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/my", h.Notification.ListMine)
	notifications.Get("/recent", h.Notification.ListRecent)
	notifications.Get("/complaint/:complaintId", h.Notification.ListByComplaint)
	notifications.Get("/statistics", h.Notification.Statistics)
	notifications.Delete("/complaint/:complaintId", middleware.RequireRole("admin"), h.Notification.DeleteByComplaint)
	notifications.Get("/:id", h.Notification.GetByID)
	notifications.Put("/:id", middleware.RequireRole("admin"), h.Notification.Update)
	notifications.Delete("/:id", h.Notification.Delete)

	ratings := protected.Group("/ratings")
	ratings.Post("/", middleware.RequireRole("citizen"), h.Rating.Create)
	ratings.Get("/", h.Rating.List)
	ratings.Get("/my", h.Rating.ListMine)
	ratings.Get("/feedback", middleware.RequireRole("admin"), h.Rating.ListWithFeedback)
	ratings.Get("/statistics", h.Rating.Statistics)
	ratings.Get("/complaint/:complaintId", h.Rating.ListByComplaint)
	ratings.Get("/complaint/:complaintId/rated", h.Rating.HasRated)
	ratings.Get("/:id", h.Rating.GetByID)
	ratings.Put("/:id", h.Rating.Update)
	ratings.Delete("/:id", h.Rating.Delete)
}
