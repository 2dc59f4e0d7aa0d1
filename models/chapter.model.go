package models

import "gorm.io/gorm"

// Chapter belongs to exactly one course
type Chapter struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Title         string `json:"title"`
	VideoURL      string `json:"video_url"`
	ImageURL      string `json:"image_url"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"sequence_order" gorm:"index;not null"` // 1-based position within the course
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}
