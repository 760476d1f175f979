package entities

import "time"

// ContactLink is a social/contact link rendered in the site footer and on
// the contact page.
type ContactLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:128" json:"label"`
	URL       string    `gorm:"size:512" json:"url"`
	Icon      string    `gorm:"size:64" json:"icon,omitempty"`
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactRequest is one submission of the public contact form.
// PublicID is exposed to the admin UI instead of the row ID.
type ContactRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PublicID  string    `gorm:"uniqueIndex;size:36" json:"public_id"`
	Name      string    `gorm:"size:256" json:"name"`
	Email     string    `gorm:"size:256" json:"email"`
	Company   string    `gorm:"size:256" json:"company,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ContactLink) TableName() string {
	return "contact_links"
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
