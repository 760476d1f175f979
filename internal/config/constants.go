package config

// Default paths and bucket names
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./folio.db"

	// DefaultImagesBucket holds public hero/cover images
	DefaultImagesBucket = "images"

	// DefaultContentBucket holds public MDX bodies
	DefaultContentBucket = "content"

	// DefaultResumesBucket holds private resume files, accessed only via signed URLs
	DefaultResumesBucket = "resumes"
)

// Default featured-item caps. The original site hardcoded different caps per
// entity type; they are kept as defaults but overridable via environment.
const (
	DefaultFeaturedProjectsCap    = 3
	DefaultFeaturedCaseStudiesCap = 3
	DefaultFeaturedArticlesCap    = 6
)
