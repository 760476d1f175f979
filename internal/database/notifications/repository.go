// Package notifications provides database operations for the notification
// settings singleton and the append-only notification log.
package notifications

import (
	"time"

	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

// Repository handles notification settings and log database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notifications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings returns the singleton settings row, or (nil, nil) when the
// admin has never saved the form. Callers apply per-channel defaults to a
// nil row.
func (r *Repository) GetSettings() (*entities.NotificationSettings, error) {
	var settings entities.NotificationSettings
	err := r.db.Where("id = ?", entities.SingletonID).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings upserts the singleton settings row.
func (r *Repository) SaveSettings(settings *entities.NotificationSettings) error {
	settings.ID = entities.SingletonID
	return r.db.Save(settings).Error
}

// AppendLog writes one channel-attempt outcome. Log rows are append-only.
func (r *Repository) AppendLog(entry *entities.NotificationLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// RecentLog returns the most recent log entries, newest first.
func (r *Repository) RecentLog(limit int) ([]entities.NotificationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []entities.NotificationLog
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// LogByEvent returns all entries written for one dispatch, channel order
// unspecified.
func (r *Repository) LogByEvent(eventID string) ([]entities.NotificationLog, error) {
	var entries []entities.NotificationLog
	err := r.db.Where("event_id = ?", eventID).Find(&entries).Error
	return entries, err
}

// DeleteOldEntries removes log entries older than the given time. Returns
// the number of deleted rows.
func (r *Repository) DeleteOldEntries(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.NotificationLog{})
	return result.RowsAffected, result.Error
}
