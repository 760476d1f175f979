// Package casestudies provides database operations for case studies.
package casestudies

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles all case-study database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new case-studies repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a case study.
func (r *Repository) GetByID(id uint) (*entities.CaseStudy, error) {
	var cs entities.CaseStudy
	err := r.db.First(&cs, id).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// GetBySlug retrieves a case study by slug.
func (r *Repository) GetBySlug(slug string) (*entities.CaseStudy, error) {
	var cs entities.CaseStudy
	err := r.db.Where("slug = ?", slug).First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// List returns case studies, drafts excluded when publishedOnly is set.
func (r *Repository) List(publishedOnly bool) ([]entities.CaseStudy, error) {
	var studies []entities.CaseStudy
	query := r.db.Order("featured DESC, created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Find(&studies).Error
	return studies, err
}

// CountFeatured counts featured case studies, excluding the given ID.
func (r *Repository) CountFeatured(excludeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.CaseStudy{}).
		Where("featured = ? AND id <> ?", true, excludeID).
		Count(&count).Error
	return count, err
}

// Save upserts a case study. Relation links live on the Project/Article side;
// the case study row itself has no junction writes.
func (r *Repository) Save(cs *entities.CaseStudy) error {
	return r.db.Save(cs).Error
}

// Delete soft-deletes a case study.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.CaseStudy{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
