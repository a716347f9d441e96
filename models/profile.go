package models

import "time"

type Profile struct {
	ID           string     `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Password     string     `gorm:"column:password" json:"-"`
	Role         string     `gorm:"column:role" json:"role"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	AvatarURL    *string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	FacultyID    *string    `gorm:"column:faculty_id" json:"faculty_id,omitempty"`
	DepartmentID *string    `gorm:"column:department_id" json:"department_id,omitempty"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

type Department struct {
	ID            string  `gorm:"primaryKey;column:id" json:"id"`
	Name          string  `gorm:"column:name" json:"name"`
	Head          *string `gorm:"column:head" json:"head,omitempty"`
	InnovationLab *string `gorm:"column:innovation_lab" json:"innovation_lab,omitempty"`
	Location      *string `gorm:"column:location" json:"location,omitempty"`
	InstitutionID *string `gorm:"column:institution_id" json:"institution_id,omitempty"`
}

type Institution struct {
	ID   string `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

// TableName overrides
func (Profile) TableName() string {
	return "profiles"
}

func (Department) TableName() string {
	return "departments"
}

func (Institution) TableName() string {
	return "institutions"
}

// DepartmentInfo is the department block embedded in an AppUser, with the
// institution name already resolved through the departments -> institutions join.
type DepartmentInfo struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	FacultyID     string `json:"faculty_id,omitempty"`
	Institution   string `json:"institution"`
	Head          string `json:"head,omitempty"`
	InnovationLab string `json:"innovation_lab,omitempty"`
	Location      string `json:"location,omitempty"`
}

// AppUser is the composed profile returned to authenticated clients.
type AppUser struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       string         `json:"role"`
	Department DepartmentInfo `json:"department"`
	Phone      string         `json:"phone,omitempty"`
	Avatar     string         `json:"avatar,omitempty"`
}
