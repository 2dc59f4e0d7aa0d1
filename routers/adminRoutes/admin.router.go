package adminRoutes

import (
	adminController "lms/controllers/admin"
	analyticsController "lms/controllers/analytics"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin analytics and user management routes.
// Every route here is role-gated.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/analytics", analyticsController.PlatformAnalytics)
	adminGroup.Get("/course/:courseId/analytics", courseValidator.IDParam("courseId", "courseID"), analyticsController.CourseAnalytics)

	adminGroup.Get("/users", adminController.ListUsers)
	adminGroup.Post("/users/:id/approve", courseValidator.IDParam("id", "targetUserID"), adminController.ApproveUser)
	adminGroup.Post("/users/:id/reject", courseValidator.IDParam("id", "targetUserID"), adminController.RejectUser)
	adminGroup.Post("/users/:id/role", courseValidator.IDParam("id", "targetUserID"), adminController.ChangeRole)
	adminGroup.Delete("/users/:id", courseValidator.IDParam("id", "targetUserID"), adminController.DeleteUser)
	adminGroup.Post("/mentors/disapprove-all", adminController.DisapproveAllMentors)
}
