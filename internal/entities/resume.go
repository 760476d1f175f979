package entities

import "time"

// Resume is a private PDF stored in the resumes bucket. Vertical groups
// resumes by audience (e.g. "engineering", "leadership"); at most one
// resume per vertical should be active.
type Resume struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Label      string    `gorm:"size:256" json:"label"`
	Vertical   string    `gorm:"index;size:64" json:"vertical"`
	StorageKey string    `gorm:"size:512" json:"storage_key"`
	Active     bool      `gorm:"default:false;index" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
