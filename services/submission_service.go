package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/gorm"

	"ps-dashboard-api/models"
)

// ObjectUploader stores a named blob. Paths are scoped by user and record id
// and existing objects are never overwritten.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) error
}

// BatchUpload describes an optional supporting document attached to every
// record of a submission batch.
type BatchUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmissionService performs batch submission: batch row, status flips,
// membership rows, then best-effort attachment uploads.
type SubmissionService struct {
	db      *gorm.DB
	storage ObjectUploader
}

func NewSubmissionService(db *gorm.DB, storage ObjectUploader) *SubmissionService {
	return &SubmissionService{db: db, storage: storage}
}

// SubmitBatch submits the eligible records together. Status flips and
// membership rows are required steps; a failure there aborts the operation
// (already-completed steps stay, there is no rollback). Attachment uploads
// are best effort and reported back as per-record failures without undoing
// the submission.
func (s *SubmissionService) SubmitBatch(ctx context.Context, actor *models.AppUser, eligible []models.ProblemStatement, upload *BatchUpload) (*models.SubmissionBatch, []string, error) {
	if len(eligible) == 0 {
		return nil, nil, fmt.Errorf("no problem statements ready for submission")
	}

	now := time.Now()
	batch := models.SubmissionBatch{
		ID:          NewRowID(),
		SubmittedBy: actor.ID,
		Status:      StatusSubmitted,
		CreatedAt:   now,
	}
	if actor.Department.ID != "" {
		deptID := actor.Department.ID
		batch.DepartmentID = &deptID
	}
	if err := s.db.Create(&batch).Error; err != nil {
		return nil, nil, fmt.Errorf("unable to create submission batch: %w", err)
	}

	ids := make([]string, 0, len(eligible))
	for _, ps := range eligible {
		ids = append(ids, ps.ID)
	}

	updates := map[string]interface{}{
		"status":              StatusSubmitted,
		"submission_batch_id": batch.ID,
		"submitted_at":        now,
		"last_updated":        now,
	}
	if err := s.db.Model(&models.ProblemStatement{}).Where("id IN ?", ids).Updates(updates).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to submit problem statements: %w", err)
	}

	for _, id := range ids {
		item := models.SubmissionBatchItem{
			ID:                 NewRowID(),
			BatchID:            batch.ID,
			ProblemStatementID: id,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to record batch membership: %w", err)
		}
	}

	var failed []string
	if upload != nil && s.storage != nil {
		for _, ps := range eligible {
			if err := s.attachUpload(ctx, actor.ID, ps.ID, upload); err != nil {
				log.Printf("Warning: attachment upload for %s failed: %v", ps.ID, err)
				failed = append(failed, ps.ID)
			}
		}
	}

	return &batch, failed, nil
}

func (s *SubmissionService) attachUpload(ctx context.Context, userID, psID string, upload *BatchUpload) error {
	r, err := upload.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	objectPath := fmt.Sprintf("%s/%s/%d-%s", userID, psID, time.Now().UnixNano(), upload.FileName)
	if err := s.storage.Upload(ctx, objectPath, r, upload.Size, upload.ContentType); err != nil {
		return err
	}

	attachment := models.ProblemStatementAttachment{
		ID:                 NewRowID(),
		ProblemStatementID: psID,
		UploadedBy:         userID,
		FileName:           upload.FileName,
		ObjectPath:         objectPath,
		MimeType:           upload.ContentType,
		FileSize:           upload.Size,
		CreatedAt:          time.Now(),
	}
	return s.db.Create(&attachment).Error
}
