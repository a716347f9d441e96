package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
)

const maxUploadBytes = 10 << 20 // 10 MB

// loadEligible fetches the actor's own draft / revision_needed records,
// department scoped.
func loadEligible(user *models.AppUser) ([]models.ProblemStatement, error) {
	if user.Department.ID == "" {
		return nil, services.ErrNoDepartment
	}
	var rows []models.ProblemStatement
	err := config.DB.
		Where("department_id = ? AND created_by = ?", user.Department.ID, user.ID).
		Where("status IN ?", []string{services.StatusDraft, services.StatusRevisionNeeded}).
		Order(psListOrder).
		Find(&rows).Error
	return rows, err
}

// GetReadyToSubmit lists records eligible for the next submission batch.
func GetReadyToSubmit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := loadEligible(user)
	if err != nil {
		c.JSON(denialStatus(err), gin.H{"error": err.Error()})
		return
	}

	views := services.MapProblemStatements(rows)
	c.JSON(http.StatusOK, gin.H{
		"ready_to_submit": views,
		"total":           len(views),
	})
}

// SubmitBatch submits every eligible record in one batch, optionally
// attaching an uploaded supporting document to each. Attachment failures do
// not undo the submission.
func SubmitBatch(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	eligible, err := loadEligible(user)
	if err != nil {
		c.JSON(denialStatus(err), gin.H{"error": err.Error()})
		return
	}
	if len(eligible) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No problem statements ready for submission"})
		return
	}

	var upload *services.BatchUpload
	if fileHeader, err := c.FormFile("document"); err == nil && fileHeader != nil {
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Document exceeds the 10MB limit"})
			return
		}
		upload = &services.BatchUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Open: func() (io.ReadCloser, error) {
				return fileHeader.Open()
			},
		}
	}

	batch, attachFailures, err := subService.SubmitBatch(c.Request.Context(), user, eligible, upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Confirmation mail is best effort.
	go func(email string, count int, batchID string) {
		subject := "Problem statements submitted"
		body := fmt.Sprintf("<p>Your %d problem statement(s) were submitted to the institution for review.</p><p>Batch reference: %s</p>", count, batchID)
		if err := config.SendMail([]string{email}, subject, body); err != nil {
			log.Printf("Warning: submission confirmation mail failed: %v", err)
		}
	}(user.Email, len(eligible), batch.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Problem statements submitted for review",
		"batch_id":            batch.ID,
		"submitted":           len(eligible),
		"attachment_failures": attachFailures,
	})
}
