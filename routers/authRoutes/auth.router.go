package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	"lms/models"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and student lookup routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)

	// Approved-student directory for mentor bulk assignment
	authGroup.Get("/users/students", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), authController.ListStudents)
}
