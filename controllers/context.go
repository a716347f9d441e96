package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ps-dashboard-api/config"
	"ps-dashboard-api/models"
	"ps-dashboard-api/services"
)

var (
	profiles     *services.ProfileService
	sessions     *services.SessionStore
	psService    *services.ProblemStatementService
	subService   *services.SubmissionService
	identityProv services.IdentityProvider
)

// Init wires the controller layer to its services. Must run after
// config.InitDB and config.InitStorage.
func Init() {
	profiles = services.NewProfileService(config.DB)
	identityProv = services.NewDBIdentityProvider(config.DB)
	sessions = services.NewSessionStore(identityProv, profiles)
	psService = services.NewProblemStatementService(config.DB)

	var uploader services.ObjectUploader
	if config.Storage != nil {
		uploader = config.Storage
	}
	subService = services.NewSubmissionService(config.DB, uploader)
}

// currentUser resolves the authenticated user's full profile, including the
// department/institution joins, from the ids the auth middleware stored.
func currentUser(c *gin.Context) (*models.AppUser, bool) {
	userID, _ := c.Get("userID")
	email, _ := c.Get("email")

	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	fallbackEmail, _ := email.(string)
	user, err := profiles.Resolve(id, fallbackEmail)
	if err != nil {
		// Fall back to a minimal user built from the token claims.
		user = &models.AppUser{
			ID:    id,
			Email: fallbackEmail,
			Name:  services.NameFromEmail(fallbackEmail),
			Role:  services.DefaultRole,
			Department: models.DepartmentInfo{
				Name:        "Department",
				Institution: "Institution",
			},
		}
	}
	return user, true
}

// denialStatus maps local workflow denials to 403 and everything else to the
// backend-failure status.
func denialStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotCreator),
		errors.Is(err, services.ErrNoDepartment),
		errors.Is(err, services.ErrStatusNotEditable),
		errors.Is(err, services.ErrNotDeletable),
		errors.Is(err, services.ErrNotResubmittable):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
