package progressRoutes

import (
	progressController "lms/controllers/progress"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up chapter completion, progress and
// certificate routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))

	progressGroup.Get("/my", progressController.MyProgress)
	progressGroup.Get("/completed", progressController.CompletedChapters)
	progressGroup.Post("/:chapterId/complete", courseValidator.IDParam("chapterId", "chapterID"), progressController.CompleteChapter)

	certificateGroup := app.Group("/certificates", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))
	certificateGroup.Get("/:courseId", courseValidator.IDParam("courseId", "courseID"), progressController.GetCertificate)
}
