package entities

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio entry shown on the home and portfolio pages.
// Metrics is a JSON object of {key: {title, description}} records,
// normalized by the metrics coercion layer before save.
type Project struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Slug         string `gorm:"uniqueIndex;size:128" json:"slug"`
	Title        string `gorm:"size:256" json:"title"`
	Summary      string `gorm:"size:1024" json:"summary,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	HeroImageKey string `gorm:"size:512" json:"hero_image_key,omitempty"`
	TechStack    string `gorm:"size:1024" json:"tech_stack,omitempty"` // Comma-separated
	Metrics      string `gorm:"type:text" json:"metrics,omitempty"`    // JSON object
	RepoURL      string `gorm:"size:512" json:"repo_url,omitempty"`
	LiveURL      string `gorm:"size:512" json:"live_url,omitempty"`

	Featured     bool `gorm:"default:false;index" json:"featured"`
	FeaturedRank int  `json:"featured_rank,omitempty"`
	Published    bool `gorm:"default:false;index" json:"published"`

	RelatedCaseStudies []CaseStudy `gorm:"many2many:project_related_case_studies;" json:"related_case_studies,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// CaseStudy is a long-form write-up whose body lives in the content bucket.
// BodyPath is a content reference: a bare key, a storage-relative path, or a
// full public URL. It is always passed through the content key resolver
// before lookup.
type CaseStudy struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Slug         string `gorm:"uniqueIndex;size:128" json:"slug"`
	Title        string `gorm:"size:256" json:"title"`
	Client       string `gorm:"size:256" json:"client,omitempty"`
	Summary      string `gorm:"size:1024" json:"summary,omitempty"`
	HeroImageKey string `gorm:"size:512" json:"hero_image_key,omitempty"`
	BodyPath     string `gorm:"size:1024" json:"body_path,omitempty"`
	Metrics      string `gorm:"type:text" json:"metrics,omitempty"` // JSON object

	Featured  bool `gorm:"default:false;index" json:"featured"`
	Published bool `gorm:"default:false;index" json:"published"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Article is a blog post. Like CaseStudy, the MDX body is referenced via
// BodyPath rather than stored inline.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Slug     string `gorm:"uniqueIndex;size:128" json:"slug"`
	Title    string `gorm:"size:256" json:"title"`
	Excerpt  string `gorm:"size:1024" json:"excerpt,omitempty"`
	BodyPath string `gorm:"size:1024" json:"body_path,omitempty"`
	Tags     string `gorm:"size:512" json:"tags,omitempty"` // Comma-separated

	Featured    bool       `gorm:"default:false;index" json:"featured"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	RelatedCaseStudies []CaseStudy `gorm:"many2many:article_related_case_studies;" json:"related_case_studies,omitempty"`
	RelatedProjects    []Project   `gorm:"many2many:article_related_projects;" json:"related_projects,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

func (CaseStudy) TableName() string {
	return "case_studies"
}

func (Article) TableName() string {
	return "articles"
}
