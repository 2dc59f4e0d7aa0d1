package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, chapter and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Static paths first so they are not shadowed by /:id
	courseGroup.Get("/list", courseController.ListCourses)
	courseGroup.Get("/my", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseController.MyCourses)
	courseGroup.Get("/student/my-courses", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseController.StudentMyCourses)

	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.CourseBody(), courseController.CreateCourse)
	courseGroup.Get("/:id", courseValidator.IDParam("id", "courseID"), courseController.GetCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("id", "courseID"), courseValidator.CourseBody(), courseController.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("id", "courseID"), courseController.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseValidator.IDParam("id", "courseID"), courseController.Enroll)
	courseGroup.Post("/:id/assign", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("id", "courseID"), courseValidator.AssignStudentsBody(), courseController.AssignStudents)

	// Sequential chapter list for enrolled students
	courseGroup.Get("/:id/chapters", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseValidator.IDParam("id", "courseID"), courseController.ListChaptersForStudent)

	// Mentor chapter management
	chapterGroup := app.Group("/chapters")
	chapterGroup.Get("/:courseId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("courseId", "courseID"), courseController.ListChapters)
	chapterGroup.Post("/:courseId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("courseId", "courseID"), courseValidator.ChapterBody(), courseController.CreateChapter)
	chapterGroup.Delete("/:chapterId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), courseValidator.IDParam("chapterId", "chapterID"), courseController.DeleteChapter)
}
