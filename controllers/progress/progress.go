package progressController

import (
	"errors"
	analyticsController "lms/controllers/analytics"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompleteChapter marks a chapter completed for the calling student.
// Chapters unlock sequentially: position N requires a progress row for
// position N-1 of the same course. A repeat completion is an error, not
// a no-op.
func CompleteChapter(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("course_id = ? AND student_id = ? AND is_deleted = ?", chapter.CourseID, studentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Fast path; the unique (student_id, chapter_id) index below is the
	// authoritative guard.
	var existing models.Progress
	if err := db.Where("student_id = ? AND chapter_id = ? AND is_deleted = ?", studentID, chapter.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Chapter already completed!", nil)
	}

	if chapter.SequenceOrder > 1 {
		var previous models.Chapter
		if err := db.Where("course_id = ? AND sequence_order = ? AND is_deleted = ?", chapter.CourseID, chapter.SequenceOrder-1, false).First(&previous).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete previous chapters first!", nil)
		}

		var prevProgress models.Progress
		if err := db.Where("student_id = ? AND chapter_id = ? AND is_deleted = ?", studentID, previous.ID, false).First(&prevProgress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete previous chapters first!", nil)
		}
	}

	progress := models.Progress{
		StudentID: studentID,
		ChapterID: chapter.ID,
		CourseID:  chapter.CourseID,
	}

	if err := db.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Chapter already completed!", nil)
		}
		log.Printf("Error saving progress for student %d chapter %d: %v", studentID, chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete chapter!", nil)
	}

	if err := RecomputeEnrollment(db, &enrollment); err != nil {
		log.Printf("Error updating enrollment progress for student %d course %d: %v", studentID, chapter.CourseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter completed!", nil)
}

// RecomputeEnrollment refreshes an enrollment's cached counters from the
// authoritative progress and chapter row counts
func RecomputeEnrollment(db *gorm.DB, enrollment *models.Enrollment) error {
	completed, err := analyticsController.CompletedCount(db, enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return err
	}

	var total int64
	if err := db.Model(&models.Chapter{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&total).Error; err != nil {
		return err
	}

	wasCompleted := enrollment.Status == models.EnrollmentCompleted

	enrollment.CompletedChapters = int(completed)
	enrollment.TotalChapters = int(total)
	enrollment.Percentage = analyticsController.Percent(completed, total)

	if total > 0 && completed >= total {
		enrollment.Status = models.EnrollmentCompleted
		if enrollment.CompletedAt == nil {
			completedAt := time.Now()
			enrollment.CompletedAt = &completedAt
		}
	} else if completed > 0 {
		enrollment.Status = models.EnrollmentInProgress
	}

	if err := db.Save(enrollment).Error; err != nil {
		return err
	}

	if !wasCompleted && enrollment.Status == models.EnrollmentCompleted {
		go utils.SendCompletionWebhook(enrollment.StudentID, enrollment.CourseID, enrollment.CompletedChapters)
	}

	return nil
}

// MyProgress returns the calling student's completion summary for one
// course. The course is always named explicitly, never inferred.
func MyProgress(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Query("course_id"))
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "course_id is required!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	completed, err := analyticsController.CompletedCount(db, studentID, course.ID)
	if err != nil {
		log.Printf("Error counting progress for student %d course %d: %v", studentID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	total, err := analyticsController.ChapterTotal(db, &course, analyticsController.TotalActual)
	if err != nil {
		log.Printf("Error counting chapters for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completedChapters": completed,
		"totalChapters":     total,
		"percentage":        analyticsController.Percent(completed, total),
	})
}

// CompletedChapters returns every chapter the calling student has
// completed, across all courses, ordered by chapter id
func CompletedChapters(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var chapterIDs []uint
	if err := database.Database.Db.Model(&models.Progress{}).
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Order("chapter_id asc").
		Pluck("chapter_id", &chapterIDs).Error; err != nil {
		log.Printf("Error fetching completed chapters for student %d: %v", studentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed chapters fetched successfully!", chapterIDs)
}
