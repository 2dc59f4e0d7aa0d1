package courseController

import (
	analyticsController "lms/controllers/analytics"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a course owned by the calling mentor
func CreateCourse(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:         reqData.Title,
		Description:   reqData.Description,
		TotalChapters: reqData.TotalChapters,
		MentorID:      mentorID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// courseListRow is a course joined with its mentor's name
type courseListRow struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TotalChapters int    `json:"total_chapters"`
	MentorName    string `json:"mentor_name"`
}

// ListCourses returns all courses with mentor names (public)
func ListCourses(c *fiber.Ctx) error {
	var rows []courseListRow
	if err := database.Database.Db.Model(&models.Course{}).
		Select("courses.id, courses.title, courses.description, courses.total_chapters, users.name AS mentor_name").
		Joins("LEFT JOIN users ON users.id = courses.mentor_id").
		Where("courses.is_deleted = ?", false).
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", rows)
}

// GetCourse returns course details with the mentor name (public)
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var row courseListRow
	result := database.Database.Db.Model(&models.Course{}).
		Select("courses.id, courses.title, courses.description, courses.total_chapters, users.name AS mentor_name").
		Joins("LEFT JOIN users ON users.id = courses.mentor_id").
		Where("courses.id = ? AND courses.is_deleted = ?", courseID, false).
		Scan(&row)
	if result.Error != nil || result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", row)
}

// MyCourses returns the calling mentor's courses
func MyCourses(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.
		Where("mentor_id = ? AND is_deleted = ?", mentorID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		log.Printf("Error fetching mentor courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// UpdateCourse updates title/description/total_chapters of an owned course.
// The owning mentor never changes.
func UpdateCourse(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this course!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.TotalChapters = reqData.TotalChapters

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse deletes an owned course and cascades to its chapters,
// enrollments and progress rows so no orphans remain
func DeleteCourse(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this course!", nil)
	}

	tx := database.Database.Db.Begin()

	for _, dependent := range []interface{}{&models.Progress{}, &models.Enrollment{}, &models.Chapter{}} {
		if err := tx.Model(dependent).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error cascading course delete %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
		}
	}

	if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// StudentMyCourses returns the calling student's enrolled courses with
// both the declared and actual chapter totals and matching percentages
func StudentMyCourses(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ? AND is_deleted = ?", studentID, false).Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type enrolledCourseRow struct {
		ID                uint   `json:"id"`
		Title             string `json:"title"`
		Description       string `json:"description"`
		TotalChapters     int    `json:"total_chapters"`
		ActualChapters    int    `json:"actual_chapters"`
		CompletedChapters []uint `json:"completed_chapters"`
		Percent           int    `json:"percent"`        // of the declared target
		PercentActual     int    `json:"percent_actual"` // of the actual chapter rows
		MentorName        string `json:"mentor_name"`
	}

	rows := make([]enrolledCourseRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		var mentor models.User
		mentorName := "TBD"
		if err := db.Where("id = ?", course.MentorID).First(&mentor).Error; err == nil {
			mentorName = mentor.Name
		}

		var completedIDs []uint
		db.Model(&models.Progress{}).
			Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, course.ID, false).
			Order("chapter_id asc").
			Pluck("chapter_id", &completedIDs)

		var actualChapters int64
		db.Model(&models.Chapter{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&actualChapters)

		completed := int64(len(completedIDs))

		rows = append(rows, enrolledCourseRow{
			ID:                course.ID,
			Title:             course.Title,
			Description:       course.Description,
			TotalChapters:     course.TotalChapters,
			ActualChapters:    int(actualChapters),
			CompletedChapters: completedIDs,
			Percent:           analyticsController.Percent(completed, int64(course.TotalChapters)),
			PercentActual:     analyticsController.Percent(completed, actualChapters),
			MentorName:        mentorName,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", rows)
}
