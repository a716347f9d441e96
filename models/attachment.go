package models

import "time"

type ProblemStatementAttachment struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	ProblemStatementID string    `gorm:"column:problem_statement_id" json:"problem_statement_id"`
	UploadedBy         string    `gorm:"column:uploaded_by" json:"uploaded_by"`
	FileName           string    `gorm:"column:file_name" json:"file_name"`
	ObjectPath         string    `gorm:"column:object_path" json:"object_path"`
	MimeType           string    `gorm:"column:mime_type" json:"mime_type"`
	FileSize           int64     `gorm:"column:file_size" json:"file_size"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ProblemStatementAttachment) TableName() string { return "problem_statement_attachments" }

func (a *ProblemStatementAttachment) GetFileSizeInMB() float64 {
	return float64(a.FileSize) / (1024 * 1024)
}

// IsValidDocumentType reports whether the attachment is an accepted
// document format (PDF, Word, Excel).
func (a *ProblemStatementAttachment) IsValidDocumentType() bool {
	validTypes := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	for _, validType := range validTypes {
		if a.MimeType == validType {
			return true
		}
	}
	return false
}
