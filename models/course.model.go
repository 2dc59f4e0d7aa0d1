package models

import "gorm.io/gorm"

// Course represents a learning course owned by a mentor
type Course struct {
	gorm.Model
	Title         string `json:"title"`
	Description   string `json:"description"`
	TotalChapters int    `json:"total_chapters" gorm:"default:0"` // declared target, not the actual chapter row count
	MentorID      uint   `json:"mentor_id" gorm:"index;not null"` // immutable after creation
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}
