// Package contacts provides database operations for contact links and
// incoming contact requests.
package contacts

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles contact-link and contact-request database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new contacts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Contact links ---

// ListLinks returns contact links in display order.
func (r *Repository) ListLinks() ([]entities.ContactLink, error) {
	var links []entities.ContactLink
	err := r.db.Order("sort_order ASC, id ASC").Find(&links).Error
	return links, err
}

// SaveLink upserts a contact link.
func (r *Repository) SaveLink(link *entities.ContactLink) error {
	return r.db.Save(link).Error
}

// DeleteLink removes a contact link.
func (r *Repository) DeleteLink(id uint) error {
	result := r.db.Delete(&entities.ContactLink{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Contact requests ---

// CreateRequest inserts one contact-form submission, assigning a public UUID.
func (r *Repository) CreateRequest(req *entities.ContactRequest) error {
	if req.PublicID == "" {
		req.PublicID = uuid.NewString()
	}
	return r.db.Create(req).Error
}

// ListRequests returns contact requests newest-first with pagination.
func (r *Repository) ListRequests(limit, offset int) ([]entities.ContactRequest, int64, error) {
	var requests []entities.ContactRequest
	var total int64

	if err := r.db.Model(&entities.ContactRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

// CountRequests returns the total number of contact requests.
func (r *Repository) CountRequests() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ContactRequest{}).Count(&count).Error
	return count, err
}
