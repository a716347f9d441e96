package models

import "time"

type SubmissionBatch struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	DepartmentID *string   `gorm:"column:department_id" json:"department_id,omitempty"`
	SubmittedBy  string    `gorm:"column:submitted_by" json:"submitted_by"`
	Status       string    `gorm:"column:status" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

type SubmissionBatchItem struct {
	ID                 string `gorm:"primaryKey;column:id" json:"id"`
	BatchID            string `gorm:"column:batch_id" json:"batch_id"`
	ProblemStatementID string `gorm:"column:problem_statement_id" json:"problem_statement_id"`
}

// TableName overrides
func (SubmissionBatch) TableName() string {
	return "submission_batches"
}

func (SubmissionBatchItem) TableName() string {
	return "submission_batch_items"
}
