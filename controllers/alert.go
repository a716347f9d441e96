package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
)

// GetAlerts returns the most recent alerts. Alerts are informational only and
// have no workflow effect.
func GetAlerts(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var alerts []models.ProblemStatementAlert
	if err := config.DB.Order("created_at DESC").Limit(limit).Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}
