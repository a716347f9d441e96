package models

import "time"

type ProblemStatementAlert struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	ProblemStatementID *string   `gorm:"column:problem_statement_id" json:"problem_statement_id,omitempty"`
	Type               string    `gorm:"column:type" json:"type"` // overdue|reminder|message|approval
	Title              string    `gorm:"column:title" json:"title"`
	Description        string    `gorm:"column:description" json:"description"`
	Priority           string    `gorm:"column:priority" json:"priority"` // high|medium|low
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ProblemStatementAlert) TableName() string { return "problem_statement_alerts" }
