package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment tracks a student's enrollment in a course with a cached
// progress snapshot. The snapshot is recomputed on every completion and
// reconciled nightly; the progress table stays authoritative.
type Enrollment struct {
	gorm.Model
	CourseID          uint       `json:"course_id" gorm:"uniqueIndex:idx_course_student;not null"`
	StudentID         uint       `json:"student_id" gorm:"uniqueIndex:idx_course_student;not null"`
	Status            string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	CompletedChapters int        `json:"completed_chapters" gorm:"default:0"`
	TotalChapters     int        `json:"total_chapters" gorm:"default:0"`
	Percentage        int        `json:"percentage" gorm:"default:0"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsDeleted         bool       `json:"-" gorm:"default:false"`
}
