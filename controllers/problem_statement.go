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

// psListOrder is the ordering contract used across every listing: most
// recently updated first (MySQL sorts NULLs last in DESC), created_at as
// tiebreak.
const psListOrder = "last_updated DESC, created_at DESC"

// GetProblemStatements lists the department's problem statements. Records of
// other departments are never fetched.
func GetProblemStatements(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Department.ID == "" {
		c.JSON(http.StatusOK, gin.H{"problem_statements": []models.ProblemStatementView{}, "total": 0})
		return
	}

	var rows []models.ProblemStatement
	query := config.DB.Where("department_id = ?", user.Department.ID).Order(psListOrder)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + utils.SanitizeInput(search) + "%"
		query = query.Where("title LIKE ? OR category LIKE ?", like, like)
	}

	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch problem statements"})
		return
	}

	views := services.MapProblemStatements(rows)
	c.JSON(http.StatusOK, gin.H{
		"problem_statements": views,
		"total":              len(views),
	})
}

// fetchScoped loads a single problem statement within the actor's department
// scope. Cross-department records read as not found.
func fetchScoped(c *gin.Context, user *models.AppUser, id string) (*models.ProblemStatement, bool) {
	var row models.ProblemStatement
	if user.Department.ID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem statement not found"})
		return nil, false
	}
	if err := config.DB.Where("id = ? AND department_id = ?", id, user.Department.ID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem statement not found"})
		return nil, false
	}
	return &row, true
}

// GetProblemStatement returns a single record by id.
func GetProblemStatement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"problem_statement": services.MapProblemStatement(*row)})
}

// CreateProblemStatement creates a new draft for the actor's department.
func CreateProblemStatement(c *gin.Context) {
	type CreateRequest struct {
		Title               string `json:"title" binding:"required"`
		Category            string `json:"category" binding:"required"`
		Theme               string `json:"theme" binding:"required"`
		Description         string `json:"description" binding:"required"`
		DetailedDescription string `json:"detailed_description"`
		FacultyOwner        string `json:"faculty_owner"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Department.ID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNoDepartment.Error()})
		return
	}

	now := time.Now()
	status := services.StatusDraft
	createdBy := user.ID
	deptID := user.Department.ID
	deptName := user.Department.Name

	row := models.ProblemStatement{
		ID:           services.NewRowID(),
		PSCode:       services.GenerateProblemStatementCode(),
		Title:        utils.SanitizeInput(req.Title),
		Category:     utils.SanitizeInput(req.Category),
		Theme:        utils.SanitizeInput(req.Theme),
		Status:       &status,
		Description:  utils.SanitizeInput(req.Description),
		Department:   &deptName,
		CreatedBy:    &createdBy,
		DepartmentID: &deptID,
		LastUpdated:  &now,
		CreatedAt:    now,
	}
	if req.DetailedDescription != "" {
		detailed := utils.SanitizeInput(req.DetailedDescription)
		row.DetailedDescription = &detailed
	}
	if req.FacultyOwner != "" {
		owner := utils.SanitizeInput(req.FacultyOwner)
		row.FacultyOwner = &owner
	}

	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create problem statement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Problem statement created as draft",
		"problem_statement": services.MapProblemStatement(row),
	})
}

// UpdateProblemStatement edits a record. Only the creator may edit, and only
// while the record is not approved.
func UpdateProblemStatement(c *gin.Context) {
	type UpdateRequest struct {
		Title               string `json:"title"`
		Category            string `json:"category"`
		Theme               string `json:"theme"`
		Description         string `json:"description"`
		DetailedDescription string `json:"detailed_description"`
		FacultyOwner        string `json:"faculty_owner"`
	}

	var req UpdateRequest
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

	if err := services.AuthorizeMutation(user.ID, row.CreatedBy); err != nil {
		c.JSON(denialStatus(err), gin.H{"error": err.Error()})
		return
	}
	if !services.CanEdit(services.StatusOf(row)) {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrStatusNotEditable.Error()})
		return
	}

	if req.Title != "" {
		row.Title = utils.SanitizeInput(req.Title)
	}
	if req.Category != "" {
		row.Category = utils.SanitizeInput(req.Category)
	}
	if req.Theme != "" {
		row.Theme = utils.SanitizeInput(req.Theme)
	}
	if req.Description != "" {
		row.Description = utils.SanitizeInput(req.Description)
	}
	if req.DetailedDescription != "" {
		detailed := utils.SanitizeInput(req.DetailedDescription)
		row.DetailedDescription = &detailed
	}
	if req.FacultyOwner != "" {
		owner := utils.SanitizeInput(req.FacultyOwner)
		row.FacultyOwner = &owner
	}
	services.Touch(row, time.Now())

	if err := config.DB.Save(row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update problem statement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Problem statement updated",
		"problem_statement": services.MapProblemStatement(*row),
	})
}

// ResubmitProblemStatement moves a revision_needed record back into review.
func ResubmitProblemStatement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	row, ok := fetchScoped(c, user, c.Param("id"))
	if !ok {
		return
	}

	changed, err := psService.Resubmit(row, user.ID, time.Now())
	if err != nil {
		c.JSON(denialStatus(err), gin.H{"error": err.Error()})
		return
	}

	msg := "Problem statement resubmitted for review"
	if !changed {
		msg = "Problem statement is already under review"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           msg,
		"resubmitted":       changed,
		"problem_statement": services.MapProblemStatement(*row),
	})
}

// DeleteProblemStatement removes a record and its dependent rows. Permitted
// only to the creator and only from revision_needed.
func DeleteProblemStatement(c *gin.Context) {
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
	if !services.CanDelete(services.StatusOf(row)) {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotDeletable.Error()})
		return
	}

	// Best-effort removal of stored blobs before the rows go.
	if config.Storage != nil {
		var attachments []models.ProblemStatementAttachment
		if err := config.DB.Where("problem_statement_id = ?", row.ID).Find(&attachments).Error; err == nil {
			for _, a := range attachments {
				_ = config.Storage.Remove(c.Request.Context(), a.ObjectPath)
			}
		}
	}

	if err := psService.DeleteCascade(row.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Problem statement deleted"})
}
