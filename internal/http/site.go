package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/entities"
)

// SiteStore defines database operations for the site settings and profile
// singletons.
type SiteStore interface {
	GetSettings() (*entities.SiteSettings, error)
	SaveSettings(settings *entities.SiteSettings) error
	GetProfile() (*entities.SiteProfile, error)
	SaveProfile(profile *entities.SiteProfile) error
}

type SiteController struct {
	store   SiteStore
	auditor *audit.Service
}

func NewSiteController(store SiteStore, auditor *audit.Service) *SiteController {
	return &SiteController{store: store, auditor: auditor}
}

// Profile returns the public profile.
// GET /api/profile
func (sc *SiteController) Profile(c *gin.Context) {
	profile, err := sc.store.GetProfile()
	if err != nil {
		respondInternalError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetSettings returns the site settings for the admin form.
// GET /api/admin/site-settings
func (sc *SiteController) GetSettings(c *gin.Context) {
	settings, err := sc.store.GetSettings()
	if err != nil {
		respondInternalError(c, err, "get site settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type siteSettingsRequest struct {
	SiteTitle       string `json:"site_title" binding:"required"`
	Tagline         string `json:"tagline"`
	MetaDescription string `json:"meta_description"`
	AnalyticsID     string `json:"analytics_id"`
	MaintenanceMode bool   `json:"maintenance_mode"`
}

// SaveSettings updates the site settings singleton.
// PUT /api/admin/site-settings
func (sc *SiteController) SaveSettings(c *gin.Context) {
	var req siteSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "site_title is required")
		return
	}

	settings := &entities.SiteSettings{
		SiteTitle:       req.SiteTitle,
		Tagline:         req.Tagline,
		MetaDescription: req.MetaDescription,
		AnalyticsID:     req.AnalyticsID,
		MaintenanceMode: req.MaintenanceMode,
	}
	if err := sc.store.SaveSettings(settings); err != nil {
		respondInternalError(c, err, "save site settings")
		return
	}

	sc.auditor.LogSettings("site_settings_updated", "Site settings updated")
	c.JSON(http.StatusOK, settings)
}

type profileSkillRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
}

type profileExperienceRequest struct {
	Company   string     `json:"company" binding:"required"`
	Role      string     `json:"role" binding:"required"`
	Summary   string     `json:"summary"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	SortOrder int        `json:"sort_order"`
}

type profileRequest struct {
	FullName    string                     `json:"full_name" binding:"required"`
	Headline    string                     `json:"headline"`
	Bio         string                     `json:"bio"`
	Location    string                     `json:"location"`
	AvatarKey   string                     `json:"avatar_key"`
	Skills      []profileSkillRequest      `json:"skills"`
	Experiences []profileExperienceRequest `json:"experiences"`
}

// SaveProfile replaces the profile singleton along with its skills and
// experiences.
// PUT /api/admin/profile
func (sc *SiteController) SaveProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "full_name is required")
		return
	}

	profile := &entities.SiteProfile{
		FullName:  req.FullName,
		Headline:  req.Headline,
		Bio:       req.Bio,
		Location:  req.Location,
		AvatarKey: req.AvatarKey,
	}
	for _, s := range req.Skills {
		profile.Skills = append(profile.Skills, entities.ProfileSkill{
			Name:      s.Name,
			Category:  s.Category,
			SortOrder: s.SortOrder,
		})
	}
	for _, e := range req.Experiences {
		profile.Experiences = append(profile.Experiences, entities.ProfileExperience{
			Company:   e.Company,
			Role:      e.Role,
			Summary:   e.Summary,
			StartedAt: e.StartedAt,
			EndedAt:   e.EndedAt,
			SortOrder: e.SortOrder,
		})
	}

	if err := sc.store.SaveProfile(profile); err != nil {
		respondInternalError(c, err, "save profile")
		return
	}

	sc.auditor.LogSettings("profile_updated", "Site profile updated")
	c.JSON(http.StatusOK, profile)
}
