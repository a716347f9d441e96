package models

import "time"

type ProblemStatementMessage struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	ProblemStatementID string    `gorm:"column:problem_statement_id" json:"problem_statement_id"`
	SenderID           *string   `gorm:"column:sender_id" json:"sender_id,omitempty"`
	SenderRole         *string   `gorm:"column:sender_role" json:"sender_role,omitempty"`
	RecipientRole      *string   `gorm:"column:recipient_role" json:"recipient_role,omitempty"`
	Content            string    `gorm:"column:content" json:"content"`
	IsRead             bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ProblemStatementMessage) TableName() string { return "problem_statement_messages" }

// MessageThread groups messages by the problem statement they reference.
// Threads are derived per request, never persisted.
type MessageThread struct {
	PSID        string                    `json:"ps_id"`
	PSCode      string                    `json:"ps_code,omitempty"`
	PSTitle     string                    `json:"ps_title"`
	Messages    []ProblemStatementMessage `json:"messages"`
	UnreadCount int                       `json:"unread_count"`
}
