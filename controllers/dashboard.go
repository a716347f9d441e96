package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
)

// DashboardMetrics summarizes the department's workflow position. submitted
// counts as pending_review in aggregates.
type DashboardMetrics struct {
	TotalPrepared          int       `json:"total_prepared"`
	SubmittedToInstitution int       `json:"submitted_to_institution"`
	PendingReview          int       `json:"pending_review"`
	Approved               int       `json:"approved"`
	RevisionNeeded         int       `json:"revision_needed"`
	DeadlineDate           time.Time `json:"deadline_date"`
}

// GetDashboardStats aggregates the department's problem statements and
// returns the five most recent alongside the metrics.
func GetDashboardStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var rows []models.ProblemStatement
	if user.Department.ID != "" {
		if err := config.DB.Where("department_id = ?", user.Department.ID).Order(psListOrder).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch problem statements"})
			return
		}
	}

	views := services.MapProblemStatements(rows)

	metrics := DashboardMetrics{TotalPrepared: len(views)}
	var latestSubmitted *time.Time
	for _, v := range views {
		switch {
		case services.IsUnderReview(v.Status):
			metrics.SubmittedToInstitution++
			metrics.PendingReview++
		case v.Status == services.StatusApproved:
			metrics.SubmittedToInstitution++
			metrics.Approved++
		case v.Status == services.StatusRevisionNeeded:
			metrics.SubmittedToInstitution++
			metrics.RevisionNeeded++
		}
		if v.SubmittedAt != nil && (latestSubmitted == nil || v.SubmittedAt.After(*latestSubmitted)) {
			latestSubmitted = v.SubmittedAt
		}
	}

	// Review deadline: 14 days after the latest submission, or a 12 day
	// placeholder window when nothing has been submitted yet.
	if latestSubmitted != nil {
		metrics.DeadlineDate = latestSubmitted.Add(14 * 24 * time.Hour)
	} else {
		metrics.DeadlineDate = time.Now().Add(12 * 24 * time.Hour)
	}

	recent := views
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": metrics,
		"recent":  recent,
	})
}
