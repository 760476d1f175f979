package entities

import "time"

// SiteSettings is a singleton row of site-wide toggles and strings.
type SiteSettings struct {
	ID              string    `gorm:"primaryKey;size:16" json:"id"` // Always "singleton"
	SiteTitle       string    `gorm:"size:256" json:"site_title"`
	Tagline         string    `gorm:"size:512" json:"tagline,omitempty"`
	MetaDescription string    `gorm:"size:512" json:"meta_description,omitempty"`
	AnalyticsID     string    `gorm:"size:128" json:"analytics_id,omitempty"`
	MaintenanceMode bool      `gorm:"default:false" json:"maintenance_mode"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SiteProfile is the singleton "about me" record behind the profile page.
type SiteProfile struct {
	ID          string              `gorm:"primaryKey;size:16" json:"id"` // Always "singleton"
	FullName    string              `gorm:"size:256" json:"full_name"`
	Headline    string              `gorm:"size:512" json:"headline,omitempty"`
	Bio         string              `gorm:"type:text" json:"bio,omitempty"`
	Location    string              `gorm:"size:256" json:"location,omitempty"`
	AvatarKey   string              `gorm:"size:512" json:"avatar_key,omitempty"`
	Skills      []ProfileSkill      `gorm:"foreignKey:ProfileID" json:"skills,omitempty"`
	Experiences []ProfileExperience `gorm:"foreignKey:ProfileID" json:"experiences,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type ProfileSkill struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProfileID string `gorm:"index;size:16" json:"-"`
	Name      string `gorm:"size:128" json:"name"`
	Category  string `gorm:"size:64" json:"category,omitempty"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

type ProfileExperience struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProfileID string     `gorm:"index;size:16" json:"-"`
	Company   string     `gorm:"size:256" json:"company"`
	Role      string     `gorm:"size:256" json:"role"`
	Summary   string     `gorm:"type:text" json:"summary,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	SortOrder int        `gorm:"default:0" json:"sort_order"`
}

// SingletonID is the fixed primary key of singleton rows.
const SingletonID = "singleton"

func (SiteSettings) TableName() string {
	return "site_settings"
}

func (SiteProfile) TableName() string {
	return "site_profile"
}

func (ProfileSkill) TableName() string {
	return "profile_skills"
}

func (ProfileExperience) TableName() string {
	return "profile_experiences"
}
