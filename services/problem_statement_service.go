package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"ps-dashboard-api/models"
)

// ProblemStatementService carries the multi-step mutations on problem
// statements: deletion with its dependent-row cascade, and resubmission.
type ProblemStatementService struct {
	db *gorm.DB
}

func NewProblemStatementService(db *gorm.DB) *ProblemStatementService {
	return &ProblemStatementService{db: db}
}

// DeleteCascade removes a problem statement's dependent rows and then the
// record itself. Dependents go first; the first failing step aborts the
// operation and the parent row survives. Steps already completed are not
// rolled back.
func (s *ProblemStatementService) DeleteCascade(psID string) error {
	dependents := []struct {
		name  string
		model interface{}
	}{
		{"attachments", &models.ProblemStatementAttachment{}},
		{"messages", &models.ProblemStatementMessage{}},
		{"reviews", &models.ProblemStatementReview{}},
		{"alerts", &models.ProblemStatementAlert{}},
		{"batch items", &models.SubmissionBatchItem{}},
	}

	for _, dep := range dependents {
		if err := s.db.Where("problem_statement_id = ?", psID).Delete(dep.model).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", dep.name, err)
		}
	}

	if err := s.db.Where("id = ?", psID).Delete(&models.ProblemStatement{}).Error; err != nil {
		return fmt.Errorf("failed to delete problem statement: %w", err)
	}
	return nil
}

// Resubmit moves a revision_needed record back to pending_review. A record
// already under review is left untouched and reported as unchanged; any other
// status is a denial. Returns whether a write happened.
func (s *ProblemStatementService) Resubmit(ps *models.ProblemStatement, actorID string, now time.Time) (bool, error) {
	if err := AuthorizeMutation(actorID, ps.CreatedBy); err != nil {
		return false, err
	}

	status := StatusOf(ps)
	if IsUnderReview(status) {
		return false, nil
	}
	if !CanResubmit(status) {
		return false, ErrNotResubmittable
	}

	pending := StatusPendingReview
	updates := map[string]interface{}{
		"status":       pending,
		"last_updated": now,
	}
	if err := s.db.Model(&models.ProblemStatement{}).Where("id = ?", ps.ID).Updates(updates).Error; err != nil {
		return false, err
	}

	ps.Status = &pending
	ps.LastUpdated = &now
	return true, nil
}
