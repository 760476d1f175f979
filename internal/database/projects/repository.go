// Package projects provides database operations for portfolio projects.
package projects

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles all project database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new projects repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a project with its related case studies.
func (r *Repository) GetByID(id uint) (*entities.Project, error) {
	var project entities.Project
	err := r.db.Preload("RelatedCaseStudies").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetBySlug retrieves a project by slug with its related case studies.
func (r *Repository) GetBySlug(slug string) (*entities.Project, error) {
	var project entities.Project
	err := r.db.Preload("RelatedCaseStudies").Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns projects ordered featured-first. When publishedOnly is set,
// drafts are excluded (the public surface).
func (r *Repository) List(publishedOnly bool) ([]entities.Project, error) {
	var projects []entities.Project
	query := r.db.Order("featured DESC, featured_rank ASC, created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// ListFeatured returns published featured projects in rank order.
func (r *Repository) ListFeatured() ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.Where("featured = ? AND published = ?", true, true).
		Order("featured_rank ASC").Find(&projects).Error
	return projects, err
}

// CountFeatured counts featured projects, excluding the given ID so that
// re-saving an already-featured project does not count against the cap.
func (r *Repository) CountFeatured(excludeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Project{}).
		Where("featured = ? AND id <> ?", true, excludeID).
		Count(&count).Error
	return count, err
}

// Save upserts the project and replaces its related-case-study links in a
// single transaction, so a failure cannot leave junction rows inconsistent
// with the saved project.
func (r *Repository) Save(project *entities.Project, relatedCaseStudyIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}

		var related []entities.CaseStudy
		if len(relatedCaseStudyIDs) > 0 {
			if err := tx.Find(&related, relatedCaseStudyIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(project).Association("RelatedCaseStudies").Replace(related)
	})
}

// Delete soft-deletes a project.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
