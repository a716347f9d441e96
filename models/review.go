package models

import "time"

// ProblemStatementReview is an audit record written by the institution-side
// reviewer. This service only reads these rows and removes them when the
// parent problem statement is deleted.
type ProblemStatementReview struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	ProblemStatementID string    `gorm:"column:problem_statement_id" json:"problem_statement_id"`
	ReviewerID         *string   `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	ReviewRound        int       `gorm:"column:review_round" json:"review_round"`
	Decision           string    `gorm:"column:decision" json:"decision"` // approved|revision_needed
	Comments           *string   `gorm:"column:comments" json:"comments,omitempty"`
	ReviewedAt         time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

func (ProblemStatementReview) TableName() string { return "problem_statement_reviews" }
