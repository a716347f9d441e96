package services

import (
	"time"

	"ps-dashboard-api/models"
)

const unassignedOwner = "Unassigned"

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// MapProblemStatement normalizes a persisted row into the client view model.
// Missing status defaults to draft, missing owners to "Unassigned", and a
// missing last_updated falls back to the creation timestamp.
func MapProblemStatement(row models.ProblemStatement) models.ProblemStatementView {
	lastUpdated := row.CreatedAt
	if row.LastUpdated != nil {
		lastUpdated = *row.LastUpdated
	}

	return models.ProblemStatementView{
		ID:                  row.ID,
		PSCode:              row.PSCode,
		Title:               row.Title,
		Category:            row.Category,
		Theme:               row.Theme,
		Status:              derefOr(row.Status, StatusDraft),
		Description:         row.Description,
		DetailedDescription: derefOr(row.DetailedDescription, ""),
		FacultyOwner:        derefOr(row.FacultyOwner, unassignedOwner),
		AssignedSpoc:        derefOr(row.AssignedSpoc, unassignedOwner),
		CreatedBy:           derefOr(row.CreatedBy, ""),
		DepartmentID:        derefOr(row.DepartmentID, ""),
		SubmissionBatchID:   derefOr(row.SubmissionBatchID, ""),
		SubmittedAt:         row.SubmittedAt,
		LastUpdated:         lastUpdated,
		CreatedAt:           row.CreatedAt,
	}
}

// MapProblemStatements maps a result set, preserving query order.
func MapProblemStatements(rows []models.ProblemStatement) []models.ProblemStatementView {
	views := make([]models.ProblemStatementView, 0, len(rows))
	for _, row := range rows {
		views = append(views, MapProblemStatement(row))
	}
	return views
}

// StatusOf returns the effective status of a row, applying the draft default.
func StatusOf(row *models.ProblemStatement) string {
	if row == nil {
		return StatusDraft
	}
	return derefOr(row.Status, StatusDraft)
}

// Touch stamps last_updated on a mutation.
func Touch(row *models.ProblemStatement, now time.Time) {
	row.LastUpdated = &now
}
