package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
)

// GetReviews lists review records for the actor's own problem statements.
// Reviews are written by the institution side; this API only reads them.
func GetReviews(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Department.ID == "" {
		c.JSON(http.StatusOK, gin.H{"reviews": []models.ProblemStatementReview{}, "total": 0})
		return
	}

	var statements []models.ProblemStatement
	if err := config.DB.
		Where("department_id = ? AND created_by = ?", user.Department.ID, user.ID).
		Find(&statements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load problem statements"})
		return
	}

	ids := make([]string, 0, len(statements))
	for _, ps := range statements {
		// Drafts have never been in front of a reviewer.
		if services.StatusOf(&ps) == services.StatusDraft {
			continue
		}
		ids = append(ids, ps.ID)
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"reviews": []models.ProblemStatementReview{}, "total": 0})
		return
	}

	var reviews []models.ProblemStatementReview
	if err := config.DB.Where("problem_statement_id IN ?", ids).Order("reviewed_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}
