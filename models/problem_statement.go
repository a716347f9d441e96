package models

import "time"

// ProblemStatement represents the problem_statements table. Nullable columns
// are pointers; view-level defaults are applied by services.MapProblemStatement.
type ProblemStatement struct {
	ID                  string     `gorm:"primaryKey;column:id" json:"id"`
	PSCode              string     `gorm:"column:problem_statement_id;unique" json:"problem_statement_id"`
	Title               string     `gorm:"column:title" json:"title"`
	Category            string     `gorm:"column:category" json:"category"`
	Theme               string     `gorm:"column:theme" json:"theme"`
	Status              *string    `gorm:"column:status" json:"status,omitempty"`
	Description         string     `gorm:"column:description" json:"description"`
	DetailedDescription *string    `gorm:"column:detailed_description" json:"detailed_description,omitempty"`
	Department          *string    `gorm:"column:department" json:"department,omitempty"`
	FacultyOwner        *string    `gorm:"column:faculty_owner" json:"faculty_owner,omitempty"`
	AssignedSpoc        *string    `gorm:"column:assigned_spoc" json:"assigned_spoc,omitempty"`
	CreatedBy           *string    `gorm:"column:created_by" json:"created_by,omitempty"`
	DepartmentID        *string    `gorm:"column:department_id" json:"department_id,omitempty"`
	SubmissionBatchID   *string    `gorm:"column:submission_batch_id" json:"submission_batch_id,omitempty"`
	SubmittedAt         *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	LastUpdated         *time.Time `gorm:"column:last_updated" json:"last_updated,omitempty"`
	CreatedAt           time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for ProblemStatement.
func (ProblemStatement) TableName() string {
	return "problem_statements"
}

// ProblemStatementView is the normalized shape returned to clients, with
// defaults filled in for missing status/owner fields.
type ProblemStatementView struct {
	ID                  string     `json:"id"`
	PSCode              string     `json:"ps_code"`
	Title               string     `json:"title"`
	Category            string     `json:"category"`
	Theme               string     `json:"theme"`
	Status              string     `json:"status"`
	Description         string     `json:"description"`
	DetailedDescription string     `json:"detailed_description,omitempty"`
	FacultyOwner        string     `json:"faculty_owner"`
	AssignedSpoc        string     `json:"assigned_spoc"`
	CreatedBy           string     `json:"created_by,omitempty"`
	DepartmentID        string     `json:"department_id,omitempty"`
	SubmissionBatchID   string     `json:"submission_batch_id,omitempty"`
	SubmittedAt         *time.Time `json:"submitted_at,omitempty"`
	LastUpdated         time.Time  `json:"last_updated"`
	CreatedAt           time.Time  `json:"created_at"`
}
