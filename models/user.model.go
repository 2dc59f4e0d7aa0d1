package models

import "gorm.io/gorm"

// User roles
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"default:''"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"default:'student'"` // student, mentor, admin
	Approved  bool   `json:"approved" gorm:"default:false"` // mentors need admin approval before login
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
