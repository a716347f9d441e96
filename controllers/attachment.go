package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
)

// UploadAttachment stores a supporting document for one problem statement.
// Only the creator may attach files.
func UploadAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	if err := services.AuthorizeMutation(user.ID, row.CreatedBy); err != nil {
		c.JSON(denialStatus(err), gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	attachment := models.ProblemStatementAttachment{
		ID:                 services.NewRowID(),
		ProblemStatementID: row.ID,
		UploadedBy:         user.ID,
		FileName:           fileHeader.Filename,
		MimeType:           fileHeader.Header.Get("Content-Type"),
		FileSize:           fileHeader.Size,
		CreatedAt:          time.Now(),
	}
	if !attachment.IsValidDocumentType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type (PDF, DOC, DOCX, XLS, XLSX)"})
		return
	}

	if config.Storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Object storage is not configured"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	attachment.ObjectPath = fmt.Sprintf("%s/%s/%d-%s", user.ID, row.ID, time.Now().UnixNano(), fileHeader.Filename)
	if err := config.Storage.Upload(c.Request.Context(), attachment.ObjectPath, file, attachment.FileSize, attachment.MimeType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attachment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Document uploaded",
		"attachment": attachment,
	})
}

// GetAttachments lists a problem statement's attachments.
func GetAttachments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	var attachments []models.ProblemStatementAttachment
	if err := config.DB.Where("problem_statement_id = ?", row.ID).Order("created_at DESC").Find(&attachments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attachments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attachments": attachments,
		"total":       len(attachments),
	})
}

// DownloadAttachment streams a stored document back to the client.
func DownloadAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var attachment models.ProblemStatementAttachment
	if err := config.DB.Where("id = ?", c.Param("attachment_id")).First(&attachment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	// Department scoping runs through the parent record.
	if _, ok := fetchScoped(c, user, attachment.ProblemStatementID); !ok {
		return
	}

	if config.Storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Object storage is not configured"})
		return
	}

	reader, err := config.Storage.Download(c.Request.Context(), attachment.ObjectPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open document"})
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, attachment.FileName),
	}
	c.DataFromReader(http.StatusOK, attachment.FileSize, attachment.MimeType, reader, extraHeaders)
}

// DeleteAttachment removes a document. Only the uploader or the problem
// statement's creator may remove it; the blob removal is best effort.
func DeleteAttachment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var attachment models.ProblemStatementAttachment
	if err := config.DB.Where("id = ?", c.Param("attachment_id")).First(&attachment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	row, ok := fetchScoped(c, user, attachment.ProblemStatementID)
	if !ok {
		return
	}

	if attachment.UploadedBy != user.ID {
		if err := services.AuthorizeMutation(user.ID, row.CreatedBy); err != nil {
			c.JSON(denialStatus(err), gin.H{"error": err.Error()})
			return
		}
	}

	if config.Storage != nil {
		_ = config.Storage.Remove(c.Request.Context(), attachment.ObjectPath)
	}

	if err := config.DB.Where("id = ?", attachment.ID).Delete(&models.ProblemStatementAttachment{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
