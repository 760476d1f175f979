package entities

import "time"

// MDXDocument is the metadata row for an MDX body stored in the content
// bucket. Key is the canonical lookup key (e.g. "articles/my-post.mdx");
// StoragePath is where the object actually lives and may diverge from Key
// after a rename. The raw text is never stored in the row.
//
// Invariant: at most one non-deleted document per key.
type MDXDocument struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Key         string `gorm:"uniqueIndex;size:512" json:"key"`
	StoragePath string `gorm:"size:512" json:"storage_path"`
	Deleted     bool   `gorm:"default:false;index" json:"deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MDXDocument) TableName() string {
	return "mdx_documents"
}

// DocumentContent is an MDXDocument joined with its downloaded body.
// A storage failure leaves Content nil and fills ContentError; callers
// render the error state instead of failing the page.
type DocumentContent struct {
	MDXDocument
	Content      *string `json:"content"`
	ContentError string  `json:"content_error,omitempty"`
	PublicURL    string  `json:"public_url,omitempty"`
}
