package services

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ps-dashboard-api/models"
)

const DefaultRole = "department_admin"

// ProfileService resolves an identity id into a composed AppUser, following
// the profiles -> departments -> institutions joins. Concurrent resolutions
// for the same id are coalesced into a single database fetch sequence.
type ProfileService struct {
	db *gorm.DB

	mu       sync.Mutex
	inflight map[string]*profileCall
}

type profileCall struct {
	done chan struct{}
	user *models.AppUser
	err  error
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db:       db,
		inflight: make(map[string]*profileCall),
	}
}

// Resolve returns the full profile for userID. If a resolution for the same
// id is already in flight the caller waits for it instead of issuing
// duplicate queries.
func (s *ProfileService) Resolve(userID, fallbackEmail string) (*models.AppUser, error) {
	s.mu.Lock()
	if call, ok := s.inflight[userID]; ok {
		s.mu.Unlock()
		<-call.done
		return call.user, call.err
	}

	call := &profileCall{done: make(chan struct{})}
	s.inflight[userID] = call
	s.mu.Unlock()

	call.user, call.err = s.resolve(userID, fallbackEmail)

	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
	close(call.done)

	return call.user, call.err
}

// NameFromEmail derives a display name from the local part of an email.
func NameFromEmail(email string) string {
	if email == "" {
		return "User"
	}
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return "User"
	}
	return local
}

func (s *ProfileService) resolve(userID, fallbackEmail string) (*models.AppUser, error) {
	var profile models.Profile
	err := s.db.Where("id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// First sign-in for this identity: create a default profile row.
		now := time.Now()
		created := models.Profile{
			ID:        userID,
			Email:     fallbackEmail,
			Name:      NameFromEmail(fallbackEmail),
			Role:      DefaultRole,
			CreatedAt: &now,
		}
		if err := s.db.Create(&created).Error; err != nil {
			return nil, err
		}
		if err := s.db.Where("id = ?", userID).First(&profile).Error; err != nil {
			return nil, err
		}
	}

	dept := models.DepartmentInfo{
		Name:        "Department",
		Institution: "Institution",
	}
	if profile.DepartmentID != nil {
		dept.ID = *profile.DepartmentID
	}
	if profile.FacultyID != nil {
		dept.FacultyID = *profile.FacultyID
	}

	if profile.DepartmentID != nil && *profile.DepartmentID != "" {
		var row models.Department
		if err := s.db.Where("id = ?", *profile.DepartmentID).First(&row).Error; err != nil {
			// Keep the placeholder department rather than failing resolution.
			log.Printf("Warning: failed to load department %s: %v", *profile.DepartmentID, err)
		} else {
			dept.ID = row.ID
			dept.Name = row.Name
			if row.Head != nil {
				dept.Head = *row.Head
			}
			if row.InnovationLab != nil {
				dept.InnovationLab = *row.InnovationLab
			}
			if row.Location != nil {
				dept.Location = *row.Location
			}
			if row.InstitutionID != nil && *row.InstitutionID != "" {
				var inst models.Institution
				if err := s.db.Where("id = ?", *row.InstitutionID).First(&inst).Error; err != nil {
					log.Printf("Warning: failed to load institution %s: %v", *row.InstitutionID, err)
				} else {
					dept.Institution = inst.Name
				}
			}
		}
	}

	user := &models.AppUser{
		ID:         profile.ID,
		Name:       profile.Name,
		Email:      profile.Email,
		Role:       profile.Role,
		Department: dept,
	}
	if user.Name == "" {
		user.Name = NameFromEmail(profile.Email)
	}
	if user.Email == "" {
		user.Email = fallbackEmail
	}
	if user.Role == "" {
		user.Role = DefaultRole
	}
	if profile.Phone != nil {
		user.Phone = *profile.Phone
	}
	if profile.AvatarURL != nil {
		user.Avatar = *profile.AvatarURL
	}

	return user, nil
}

// NewRowID allocates an id for inserted rows.
func NewRowID() string {
	return uuid.NewString()
}
