// Package resumes provides database operations for resume files.
package resumes

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles resume database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new resumes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a resume.
func (r *Repository) GetByID(id uint) (*entities.Resume, error) {
	var resume entities.Resume
	err := r.db.First(&resume, id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetActiveByVertical returns the active resume for a vertical.
func (r *Repository) GetActiveByVertical(vertical string) (*entities.Resume, error) {
	var resume entities.Resume
	err := r.db.Where("vertical = ? AND active = ?", vertical, true).First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// List returns all resumes.
func (r *Repository) List() ([]entities.Resume, error) {
	var resumes []entities.Resume
	err := r.db.Order("vertical ASC, created_at DESC").Find(&resumes).Error
	return resumes, err
}

// Save upserts a resume. Activating one deactivates any other resume of the
// same vertical in the same transaction.
func (r *Repository) Save(resume *entities.Resume) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(resume).Error; err != nil {
			return err
		}
		if resume.Active {
			return tx.Model(&entities.Resume{}).
				Where("vertical = ? AND id <> ?", resume.Vertical, resume.ID).
				Update("active", false).Error
		}
		return nil
	})
}

// Delete removes a resume row.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Resume{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AllStorageKeys returns the storage key of every resume row.
func (r *Repository) AllStorageKeys() ([]string, error) {
	var keys []string
	err := r.db.Model(&entities.Resume{}).
		Where("storage_key <> ''").
		Pluck("storage_key", &keys).Error
	return keys, err
}
