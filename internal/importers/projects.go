// Package importers holds the bulk-import pipelines behind the CLI
// commands. Imports are lenient where the admin API is strict: one
// malformed record is counted and skipped, never sinks the batch.
package importers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/entities"
)

// ProjectRecord is one entry in a project import file.
type ProjectRecord struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	HeroImageKey string   `json:"hero_image_key"`
	TechStack    []string `json:"tech_stack"`
	Metrics      any      `json:"metrics"`
	RepoURL      string   `json:"repo_url"`
	LiveURL      string   `json:"live_url"`
	Featured     bool     `json:"featured"`
	FeaturedRank int      `json:"featured_rank"`
	Published    bool     `json:"published"`
}

// Result summarizes an import run.
type Result struct {
	Processed int
	Failed    int
	Errors    []string
}

// ProjectStore is the slice of the project repository the importer needs.
type ProjectStore interface {
	GetBySlug(slug string) (*entities.Project, error)
	Save(project *entities.Project, relatedCaseStudyIDs []uint) error
}

// ProjectImporter loads project records into the database, upserting by
// slug.
type ProjectImporter struct {
	store ProjectStore
}

func NewProjectImporter(store ProjectStore) *ProjectImporter {
	return &ProjectImporter{store: store}
}

// ParseProjectsFile reads and decodes an import file. The file is a JSON
// array of project records.
func ParseProjectsFile(path string) ([]ProjectRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var records []ProjectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return records, nil
}

// Import saves the records, one by one. Records without a slug or title are
// counted as failures; metrics are coerced leniently, so unrecognized
// entries are dropped rather than rejected.
func (i *ProjectImporter) Import(records []ProjectRecord) Result {
	var result Result

	for idx, record := range records {
		if err := i.importOne(record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d (%s): %v", idx+1, record.Slug, err))
			continue
		}
		result.Processed++
	}

	return result
}

func (i *ProjectImporter) importOne(record ProjectRecord) error {
	slug := strings.TrimSpace(record.Slug)
	if slug == "" {
		return fmt.Errorf("missing slug")
	}
	if strings.TrimSpace(record.Title) == "" {
		return fmt.Errorf("missing title")
	}

	metrics, err := content.CoerceMetrics(record.Metrics, false)
	if err != nil {
		return fmt.Errorf("invalid metrics: %w", err)
	}
	metricsJSON, err := content.MetricsToJSON(metrics)
	if err != nil {
		return fmt.Errorf("invalid metrics: %w", err)
	}

	project := &entities.Project{
		Slug:         slug,
		Title:        record.Title,
		Summary:      record.Summary,
		Description:  record.Description,
		HeroImageKey: record.HeroImageKey,
		TechStack:    content.JoinCSV(record.TechStack),
		Metrics:      metricsJSON,
		RepoURL:      record.RepoURL,
		LiveURL:      record.LiveURL,
		Featured:     record.Featured,
		FeaturedRank: record.FeaturedRank,
		Published:    record.Published,
	}

	// Re-importing the same file is idempotent: existing slugs update in
	// place.
	if existing, err := i.store.GetBySlug(slug); err == nil && existing != nil {
		project.ID = existing.ID
		project.CreatedAt = existing.CreatedAt
	}

	return i.store.Save(project, nil)
}
