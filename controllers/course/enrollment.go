package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// Enroll enrolls the calling student into a course. Enrolling twice is
// answered with 200, not an error.
func Enroll(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND student_id = ? AND is_deleted = ?", courseID, studentID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled!", existing)
	}

	enrollment := models.Enrollment{
		CourseID:      course.ID,
		StudentID:     studentID,
		Status:        models.EnrollmentEnrolled,
		TotalChapters: course.TotalChapters,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		log.Printf("Error enrolling student %d in course %d: %v", studentID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// AssignStudents bulk-enrolls students into an owned course. Existing
// (course, student) pairs are left untouched by the conflict target.
func AssignStudents(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedAssignStudents").(*courseValidator.AssignStudentsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No students provided!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to assign students to this course!", nil)
	}

	enrollments := make([]models.Enrollment, 0, len(reqData.StudentIDs))
	for _, studentID := range reqData.StudentIDs {
		enrollments = append(enrollments, models.Enrollment{
			CourseID:      course.ID,
			StudentID:     studentID,
			Status:        models.EnrollmentEnrolled,
			TotalChapters: course.TotalChapters,
		})
	}

	if err := database.Database.Db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&enrollments).Error; err != nil {
		log.Printf("Error assigning students to course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Students assigned successfully!", nil)
}
