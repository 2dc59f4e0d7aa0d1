package analyticsController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// TotalMode selects which chapter total a completion percentage is computed
// against. The two conventions exist side by side: student-facing progress
// and mentor analytics count the actual chapter rows, course analytics and
// platform completions use the mentor's declared target.
type TotalMode int

const (
	TotalDeclared TotalMode = iota // the course's declared total-chapter count
	TotalActual                    // the count of actual chapter rows
)

// Percent computes a floor percentage. A non-positive total is 0%, never
// a division error.
func Percent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(completed * 100 / total)
}

// ChapterTotal resolves a course's chapter total under the given mode
func ChapterTotal(db *gorm.DB, course *models.Course, mode TotalMode) (int64, error) {
	if mode == TotalDeclared {
		return int64(course.TotalChapters), nil
	}

	var total int64
	err := db.Model(&models.Chapter{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Count(&total).Error
	return total, err
}

// CompletedCount counts a student's progress rows scoped to one course
func CompletedCount(db *gorm.DB, studentID, courseID uint) (int64, error) {
	var completed int64
	err := db.Model(&models.Progress{}).
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		Count(&completed).Error
	return completed, err
}

// studentRow is one per-student completion summary
type studentRow struct {
	StudentID         uint   `json:"student_id"`
	StudentName       string `json:"student_name"`
	StudentEmail      string `json:"student_email"`
	CompletedChapters int    `json:"completed_chapters"`
	TotalChapters     int    `json:"total_chapters"`
	Percent           int    `json:"percent"`
}

// courseStudentRows builds the per-student summaries for one course.
// Zero enrolled students is a valid result, not an error.
func courseStudentRows(db *gorm.DB, course *models.Course, mode TotalMode) ([]studentRow, error) {
	total, err := ChapterTotal(db, course, mode)
	if err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	rows := make([]studentRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.StudentID, false).First(&student).Error; err != nil {
			continue
		}

		completed, err := CompletedCount(db, enrollment.StudentID, course.ID)
		if err != nil {
			return nil, err
		}

		rows = append(rows, studentRow{
			StudentID:         student.ID,
			StudentName:       student.Name,
			StudentEmail:      student.Email,
			CompletedChapters: int(completed),
			TotalChapters:     int(total),
			Percent:           Percent(completed, total),
		})
	}

	return rows, nil
}

// CourseAnalytics returns per-student completion for one course, measured
// against the declared chapter target
func CourseAnalytics(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	rows, err := courseStudentRows(db, &course, TotalDeclared)
	if err != nil {
		log.Printf("Error building course analytics for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build course analytics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course analytics fetched successfully!", fiber.Map{
		"course": fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"total_chapters": course.TotalChapters,
		},
		"students": rows,
	})
}

// MentorAnalytics returns one row per (owned course, enrolled student),
// measured against the actual chapter rows
func MentorAnalytics(c *fiber.Ctx) error {
	mentorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("mentor_id = ? AND is_deleted = ?", mentorID, false).Find(&courses).Error; err != nil {
		log.Printf("Error fetching mentor courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build mentor analytics!", nil)
	}

	type mentorRow struct {
		CourseID          uint   `json:"course_id"`
		CourseName        string `json:"course_name"`
		StudentID         uint   `json:"student_id"`
		StudentName       string `json:"student_name"`
		CompletedChapters int    `json:"completed_chapters"`
		TotalChapters     int    `json:"total_chapters"`
		Percent           int    `json:"percent"`
	}

	analytics := make([]mentorRow, 0)
	for _, course := range courses {
		rows, err := courseStudentRows(db, &course, TotalActual)
		if err != nil {
			log.Printf("Error building mentor analytics for course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build mentor analytics!", nil)
		}

		for _, row := range rows {
			analytics = append(analytics, mentorRow{
				CourseID:          course.ID,
				CourseName:        course.Title,
				StudentID:         row.StudentID,
				StudentName:       row.StudentName,
				CompletedChapters: row.CompletedChapters,
				TotalChapters:     row.TotalChapters,
				Percent:           row.Percent,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor analytics fetched successfully!", analytics)
}

// PlatformAnalytics returns platform-wide totals. Full-course completions
// are counted by the store in a single grouped query instead of iterating
// progress rows in application code.
func PlatformAnalytics(c *fiber.Ctx) error {
	db := database.Database.Db

	type roleCount struct {
		Role  string
		Count int64
	}

	var roleCounts []roleCount
	if err := db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("role").
		Scan(&roleCounts).Error; err != nil {
		log.Printf("Error counting users by role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build platform analytics!", nil)
	}

	var totalUsers, students, mentors, admins int64
	for _, rc := range roleCounts {
		totalUsers += rc.Count
		switch rc.Role {
		case models.RoleStudent:
			students = rc.Count
		case models.RoleMentor:
			mentors = rc.Count
		case models.RoleAdmin:
			admins = rc.Count
		}
	}

	var pendingMentors int64
	db.Model(&models.User{}).
		Where("role = ? AND approved = ? AND is_deleted = ?", models.RoleMentor, false, false).
		Count(&pendingMentors)

	var courseCount int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&courseCount)

	// (student, course) pairs whose distinct completed-chapter count matches
	// the course's declared target
	var completions int64
	if err := db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT p.student_id, p.course_id
			FROM progresses p
			JOIN courses c ON c.id = p.course_id
			WHERE p.is_deleted = ? AND c.is_deleted = ? AND c.total_chapters > 0
			GROUP BY p.student_id, p.course_id, c.total_chapters
			HAVING COUNT(DISTINCT p.chapter_id) = c.total_chapters
		) AS done`, false, false).Scan(&completions).Error; err != nil {
		log.Printf("Error counting completions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build platform analytics!", nil)
	}

	var newUsersToday int64
	db.Model(&models.User{}).
		Where("created_at >= ? AND is_deleted = ?", now.BeginningOfDay(), false).
		Count(&newUsersToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform analytics fetched successfully!", fiber.Map{
		"totalUsers":     totalUsers,
		"students":       students,
		"mentors":        mentors,
		"admins":         admins,
		"pendingMentors": pendingMentors,
		"courseCount":    courseCount,
		"completions":    completions,
		"newUsersToday":  newUsersToday,
	})
}
