package progressController

import (
	analyticsController "lms/controllers/analytics"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCertificate issues a certificate for a fully completed course.
// Completion is measured against the course's declared chapter target.
func GetCertificate(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	completed, err := analyticsController.CompletedCount(db, studentID, course.ID)
	if err != nil {
		log.Printf("Error counting progress for student %d course %d: %v", studentID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check completion!", nil)
	}

	if course.TotalChapters <= 0 || completed < int64(course.TotalChapters) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course not completed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate generated!", fiber.Map{
		"certificate_number": uuid.NewString(),
		"student_id":         studentID,
		"course_id":          course.ID,
		"course_title":       course.Title,
		"issued_at":          time.Now(),
	})
}
