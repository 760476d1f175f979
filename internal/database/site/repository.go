// Package site provides database operations for the site-settings and
// profile singletons.
package site

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles site settings and profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new site repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings returns the site settings singleton.
func (r *Repository) GetSettings() (*entities.SiteSettings, error) {
	var settings entities.SiteSettings
	err := r.db.Where("id = ?", entities.SingletonID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings upserts the site settings singleton.
func (r *Repository) SaveSettings(settings *entities.SiteSettings) error {
	settings.ID = entities.SingletonID
	return r.db.Save(settings).Error
}

// GetProfile returns the profile singleton with skills and experiences.
func (r *Repository) GetProfile() (*entities.SiteProfile, error) {
	var profile entities.SiteProfile
	err := r.db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Preload("Experiences", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, started_at DESC")
	}).Where("id = ?", entities.SingletonID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile replaces the profile row and its skill/experience sub-tables
// in one transaction.
func (r *Repository) SaveProfile(profile *entities.SiteProfile) error {
	profile.ID = entities.SingletonID
	return r.db.Transaction(func(tx *gorm.DB) error {
		skills := profile.Skills
		experiences := profile.Experiences
		profile.Skills = nil
		profile.Experiences = nil

		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		if err := tx.Where("profile_id = ?", profile.ID).Delete(&entities.ProfileSkill{}).Error; err != nil {
			return err
		}
		for i := range skills {
			skills[i].ID = 0
			skills[i].ProfileID = profile.ID
		}
		if len(skills) > 0 {
			if err := tx.Create(&skills).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("profile_id = ?", profile.ID).Delete(&entities.ProfileExperience{}).Error; err != nil {
			return err
		}
		for i := range experiences {
			experiences[i].ID = 0
			experiences[i].ProfileID = profile.ID
		}
		if len(experiences) > 0 {
			if err := tx.Create(&experiences).Error; err != nil {
				return err
			}
		}

		profile.Skills = skills
		profile.Experiences = experiences
		return nil
	})
}
