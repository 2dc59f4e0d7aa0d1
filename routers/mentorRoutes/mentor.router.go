package mentorRoutes

import (
	analyticsController "lms/controllers/analytics"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupMentorRoutes sets up mentor analytics routes
func SetupMentorRoutes(app *fiber.App) {
	mentorGroup := app.Group("/mentor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor))

	mentorGroup.Get("/analytics", analyticsController.MentorAnalytics)
}
