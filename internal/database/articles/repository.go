// Package articles provides database operations for blog articles.
package articles

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles all article database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new articles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves an article with its relations.
func (r *Repository) GetByID(id uint) (*entities.Article, error) {
	var article entities.Article
	err := r.db.Preload("RelatedCaseStudies").Preload("RelatedProjects").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves an article by slug with its relations.
func (r *Repository) GetBySlug(slug string) (*entities.Article, error) {
	var article entities.Article
	err := r.db.Preload("RelatedCaseStudies").Preload("RelatedProjects").
		Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List returns articles newest-first, drafts excluded when publishedOnly is
// set.
func (r *Repository) List(publishedOnly bool) ([]entities.Article, error) {
	var articles []entities.Article
	query := r.db.Order("published_at DESC, created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Find(&articles).Error
	return articles, err
}

// CountFeatured counts featured articles, excluding the given ID.
func (r *Repository) CountFeatured(excludeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Article{}).
		Where("featured = ? AND id <> ?", true, excludeID).
		Count(&count).Error
	return count, err
}

// Save upserts the article and replaces both relation sets in a single
// transaction, so a failure cannot leave junction rows inconsistent with the
// saved article.
func (r *Repository) Save(article *entities.Article, relatedCaseStudyIDs, relatedProjectIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}

		var caseStudies []entities.CaseStudy
		if len(relatedCaseStudyIDs) > 0 {
			if err := tx.Find(&caseStudies, relatedCaseStudyIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(article).Association("RelatedCaseStudies").Replace(caseStudies); err != nil {
			return err
		}

		var projects []entities.Project
		if len(relatedProjectIDs) > 0 {
			if err := tx.Find(&projects, relatedProjectIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(article).Association("RelatedProjects").Replace(projects)
	})
}

// Delete soft-deletes an article.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
