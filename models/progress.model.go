package models

import "gorm.io/gorm"

// Progress marks one chapter completed by one student. The unique index on
// (student_id, chapter_id) is the authoritative duplicate guard; the
// application-level check is only a fast path.
type Progress struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"uniqueIndex:idx_student_chapter;not null"`
	ChapterID uint `json:"chapter_id" gorm:"uniqueIndex:idx_student_chapter;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	IsDeleted bool `json:"-" gorm:"default:false"`
}
