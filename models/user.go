package models

import "time"

// Role values stored on User.Role.
const (
	RoleStudent   = "STUDENT"
	RoleFaculty   = "FACULTY"
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	SchoolID     *string `gorm:"column:school_id;uniqueIndex;size:64" json:"school_id,omitempty"`
	Email        string  `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	FullName     string  `gorm:"column:full_name;size:255" json:"full_name"`
	PasswordHash string  `gorm:"column:password_hash;size:255" json:"-"`
	Role         string  `gorm:"column:role;size:32" json:"role"`
	OfficeID     *uint   `gorm:"column:office_id" json:"office_id,omitempty"`
	DepartmentID *uint   `gorm:"column:department_id" json:"department_id,omitempty"`
	IsActive     bool    `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Office struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

type Department struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;size:255" json:"name"`
	HeadID *uint  `gorm:"column:head_id" json:"head_id,omitempty"`
}
