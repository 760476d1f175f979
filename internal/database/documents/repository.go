// Package documents provides database operations for MDX document metadata.
//
// The document body itself lives in object storage; rows here only track the
// canonical key, the storage path, and the soft-delete flag.
package documents

import (
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles all mdx_documents database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new documents repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByKey retrieves a non-deleted document by its canonical key.
func (r *Repository) GetByKey(key string) (*entities.MDXDocument, error) {
	var doc entities.MDXDocument
	err := r.db.Where("key = ? AND deleted = ?", key, false).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByKeyAny retrieves a document by key regardless of the deleted flag.
// Used by the save path, which must revive soft-deleted rows.
func (r *Repository) GetByKeyAny(key string) (*entities.MDXDocument, error) {
	var doc entities.MDXDocument
	err := r.db.Where("key = ?", key).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByID retrieves a document by row ID.
func (r *Repository) GetByID(id uint) (*entities.MDXDocument, error) {
	var doc entities.MDXDocument
	err := r.db.First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upsert creates or updates the metadata row for key, pointing it at
// storagePath and clearing the soft-delete flag. Returns the previous
// storage path ("" for new rows) so callers can garbage-collect the old
// object after a rename.
func (r *Repository) Upsert(key, storagePath string) (prevStoragePath string, err error) {
	var doc entities.MDXDocument
	result := r.db.Where("key = ?", key).First(&doc)

	if result.Error == gorm.ErrRecordNotFound {
		doc = entities.MDXDocument{
			Key:         key,
			StoragePath: storagePath,
		}
		return "", r.db.Create(&doc).Error
	} else if result.Error != nil {
		return "", result.Error
	}

	prevStoragePath = doc.StoragePath
	doc.StoragePath = storagePath
	doc.Deleted = false
	return prevStoragePath, r.db.Save(&doc).Error
}

// List returns all documents, optionally including soft-deleted ones,
// ordered by key.
func (r *Repository) List(includeDeleted bool) ([]entities.MDXDocument, error) {
	var docs []entities.MDXDocument
	query := r.db.Order("key ASC")
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}
	err := query.Find(&docs).Error
	return docs, err
}

// SetDeleted flips the soft-delete flag. Content remains in storage.
func (r *Repository) SetDeleted(id uint, deleted bool) error {
	result := r.db.Model(&entities.MDXDocument{}).Where("id = ?", id).Update("deleted", deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete removes the metadata row. Purging the storage object is the
// service layer's job; the repository only touches the database.
func (r *Repository) HardDelete(id uint) (*entities.MDXDocument, error) {
	doc, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Unscoped().Delete(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// ReferencedBodyPaths collects the raw body_path values of every article and
// case study, drafts included. Callers resolve them to canonical keys to
// decide which documents are already linked.
func (r *Repository) ReferencedBodyPaths() ([]string, error) {
	var paths []string

	var articlePaths []string
	err := r.db.Model(&entities.Article{}).
		Where("body_path <> ''").
		Pluck("body_path", &articlePaths).Error
	if err != nil {
		return nil, err
	}
	paths = append(paths, articlePaths...)

	var caseStudyPaths []string
	err = r.db.Model(&entities.CaseStudy{}).
		Where("body_path <> ''").
		Pluck("body_path", &caseStudyPaths).Error
	if err != nil {
		return nil, err
	}
	paths = append(paths, caseStudyPaths...)

	return paths, nil
}

// AllStoragePaths returns the storage_path of every row, soft-deleted rows
// included. Soft-deleted documents must stay restorable, so their objects
// are not sweep candidates.
func (r *Repository) AllStoragePaths() ([]string, error) {
	var paths []string
	err := r.db.Model(&entities.MDXDocument{}).
		Where("storage_path <> ''").
		Pluck("storage_path", &paths).Error
	return paths, err
}
