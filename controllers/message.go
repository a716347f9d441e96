package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
	"ps-dashboard-api/utils"
)

// counterpartRole returns the other side of a thread.
func counterpartRole(role string) string {
	if role == "department_admin" {
		return "institution_admin"
	}
	return "department_admin"
}

// GetMessageThreads returns the actor's conversations grouped by problem
// statement, oldest message first within each thread.
func GetMessageThreads(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Department.ID == "" {
		c.JSON(http.StatusOK, gin.H{"threads": []models.MessageThread{}})
		return
	}

	var statements []models.ProblemStatement
	if err := config.DB.Where("department_id = ?", user.Department.ID).Find(&statements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load problem statements"})
		return
	}

	ids := make([]string, 0, len(statements))
	titles := make(map[string]services.ThreadTitle, len(statements))
	for _, ps := range statements {
		ids = append(ids, ps.ID)
		titles[ps.ID] = services.ThreadTitle{Code: ps.PSCode, Title: ps.Title}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"threads": []models.MessageThread{}})
		return
	}

	var rows []models.ProblemStatementMessage
	if err := config.DB.Where("problem_statement_id IN ?", ids).Order("created_at ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	threads := services.GroupMessagesIntoThreads(rows, user.Role, titles)
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// MarkThreadRead flips unread messages addressed to the actor's role in one
// thread to read.
func MarkThreadRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	result := config.DB.Model(&models.ProblemStatementMessage{}).
		Where("problem_statement_id = ? AND recipient_role = ? AND is_read = ?", row.ID, user.Role, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thread marked read", "updated": result.RowsAffected})
}

// SendMessage posts a reply in a problem statement's thread, addressed to the
// counterpart role. The client reloads the thread afterwards; there is no
// push channel.
func SendMessage(c *gin.Context) {
	type SendRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	content := utils.SanitizeInput(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	senderID := user.ID
	senderRole := user.Role
	recipient := counterpartRole(user.Role)
	msg := models.ProblemStatementMessage{
		ID:                 services.NewRowID(),
		ProblemStatementID: row.ID,
		SenderID:           &senderID,
		SenderRole:         &senderRole,
		RecipientRole:      &recipient,
		Content:            content,
		IsRead:             false,
		CreatedAt:          time.Now(),
	}

	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply sent",
		"sent":    msg,
	})
}
