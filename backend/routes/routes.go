package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"habitflow/backend/config"
	"habitflow/backend/controllers"
	"habitflow/backend/middleware"
	"habitflow/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	habitService := services.NewHabitService(db)
	challengeService := services.NewChallengeService(db, services.NewXPLedger())
	analyticsService := services.NewAnalyticsService(db)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Profile routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/auth/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/auth/update-profile", authMiddleware, userController.UpdateProfile)

	// Habit routes
	habitController := controllers.NewHabitController(habitService, logger)
	habits := app.Group("/api/habits", authMiddleware)
	habits.Post("/", habitController.Create)
	habits.Get("/", habitController.List)
	habits.Get("/:id", habitController.Get)
	habits.Put("/:id", habitController.Update)
	habits.Delete("/:id", habitController.Delete)
	habits.Post("/:id/track", habitController.Track)
	habits.Get("/:id/history", habitController.History)

	// Challenge routes
	challengeController := controllers.NewChallengeController(challengeService, logger)
	challenges := app.Group("/api/challenges", authMiddleware)
	challenges.Get("/", challengeController.List)
	challenges.Get("/user/all", challengeController.UserChallenges)
	challenges.Get("/:id", challengeController.Get)
	challenges.Post("/:id/start", challengeController.Start)
	challenges.Delete("/:id/end", challengeController.End)
	challenges.Post("/", adminMiddleware, challengeController.Create)
	challenges.Delete("/:id", adminMiddleware, challengeController.Delete)

	// Enrollment routes
	userChallenge := app.Group("/api/user-challenge", authMiddleware)
	userChallenge.Post("/:id/complete", challengeController.CompleteToday)
	userChallenge.Get("/:id/history", challengeController.History)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(analyticsService, logger)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/overview", analyticsController.Overview)
	analytics.Get("/habits/daily", analyticsController.HabitsDaily)
	analytics.Get("/xp/weekly", analyticsController.XPWeekly)
	analytics.Get("/top-habits", analyticsController.TopHabits)
}
