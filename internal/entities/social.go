package entities

import "time"

// SocialPost is one curated entry of the public social feed.
type SocialPost struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Platform   string    `gorm:"index;size:32" json:"platform"` // e.g. "mastodon", "bluesky"
	ExternalID string    `gorm:"size:256" json:"external_id,omitempty"`
	Body       string    `gorm:"type:text" json:"body"`
	Link       string    `gorm:"size:512" json:"link,omitempty"`
	PostedAt   time.Time `gorm:"index" json:"posted_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SocialPost) TableName() string {
	return "social_posts"
}
