package courseController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ListChapters returns all chapters of a course for its mentor
func ListChapters(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var chapters []models.Chapter
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("sequence_order asc").
		Find(&chapters).Error; err != nil {
		log.Printf("Error fetching chapters for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", chapters)
}

// ListChaptersForStudent returns a course's chapters in sequence order,
// with completion marks, for an enrolled student
func ListChaptersForStudent(c *fiber.Ctx) error {
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

	var enrollment models.Enrollment
	if err := db.Where("course_id = ? AND student_id = ? AND is_deleted = ?", courseID, studentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var chapters []models.Chapter
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("sequence_order asc").
		Find(&chapters).Error; err != nil {
		log.Printf("Error fetching chapters for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	var completedIDs []uint
	db.Model(&models.Progress{}).
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		Pluck("chapter_id", &completedIDs)

	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	type chapterRow struct {
		models.Chapter
		IsCompleted bool `json:"is_completed"`
	}

	rows := make([]chapterRow, len(chapters))
	for i, chapter := range chapters {
		rows[i] = chapterRow{Chapter: chapter, IsCompleted: completed[chapter.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", rows)
}

// CreateChapter adds a chapter to an owned course, capped at the course's
// declared total-chapter count
func CreateChapter(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedChapter").(*courseValidator.ChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to add chapters to this course!", nil)
	}

	var chapterCount int64
	if err := db.Model(&models.Chapter{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&chapterCount).Error; err != nil {
		log.Printf("Error counting chapters for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check chapter count!", nil)
	}

	if chapterCount >= int64(course.TotalChapters) {
		message := fmt.Sprintf("Cannot add more than %d chapters to this course!", course.TotalChapters)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
	}

	chapter := models.Chapter{
		CourseID:      course.ID,
		Title:         reqData.Title,
		VideoURL:      reqData.VideoURL,
		ImageURL:      reqData.ImageURL,
		Content:       reqData.Content,
		SequenceOrder: reqData.SequenceOrder,
	}

	if err := db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// DeleteChapter removes a chapter of an owned course along with its
// progress rows
func DeleteChapter(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", chapter.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.MentorID != mentorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this chapter!", nil)
	}

	tx := db.Begin()

	if err := tx.Model(&models.Progress{}).Where("chapter_id = ?", chapter.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting progress for chapter %d: %v", chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	if err := tx.Model(&chapter).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting chapter %d: %v", chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
