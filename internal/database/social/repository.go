// Package social provides database operations for the curated social feed.
package social

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles social-post database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new social repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns posts newest-first, at most limit entries.
func (r *Repository) List(limit int) ([]entities.SocialPost, error) {
	if limit <= 0 {
		limit = 20
	}
	var posts []entities.SocialPost
	err := r.db.Order("posted_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// Save upserts a social post.
func (r *Repository) Save(post *entities.SocialPost) error {
	return r.db.Save(post).Error
}

// Delete removes a social post.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.SocialPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
