package importers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
)

type mockProjectStore struct {
	bySlug map[string]*entities.Project
	saved  []*entities.Project
	failOn string
}

func (m *mockProjectStore) GetBySlug(slug string) (*entities.Project, error) {
	if p, ok := m.bySlug[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectStore) Save(project *entities.Project, relatedCaseStudyIDs []uint) error {
	if project.Slug == m.failOn {
		return errors.New("constraint violation")
	}
	m.saved = append(m.saved, project)
	return nil
}

func TestProjectImporter_Import(t *testing.T) {
	store := &mockProjectStore{bySlug: map[string]*entities.Project{}}
	importer := NewProjectImporter(store)

	result := importer.Import([]ProjectRecord{
		{
			Slug:      "folio",
			Title:     "Folio",
			TechStack: []string{"Go", "SQLite"},
			Metrics:   map[string]any{"mrr": "Monthly recurring revenue"},
			Published: true,
		},
		{Slug: "", Title: "No Slug"},
		{Slug: "no-title"},
	})

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, "folio", saved.Slug)
	assert.Equal(t, "Go, SQLite", saved.TechStack)
	assert.Contains(t, saved.Metrics, "Monthly recurring revenue")
	assert.True(t, saved.Published)
}

func TestProjectImporter_UpsertsBySlug(t *testing.T) {
	store := &mockProjectStore{
		bySlug: map[string]*entities.Project{
			"folio": {ID: 7, Slug: "folio", Title: "Old Title"},
		},
	}
	importer := NewProjectImporter(store)

	result := importer.Import([]ProjectRecord{
		{Slug: "folio", Title: "New Title"},
	})

	assert.Equal(t, 1, result.Processed)
	require.Len(t, store.saved, 1)
	assert.Equal(t, uint(7), store.saved[0].ID)
	assert.Equal(t, "New Title", store.saved[0].Title)
}

func TestProjectImporter_LenientMetrics(t *testing.T) {
	store := &mockProjectStore{bySlug: map[string]*entities.Project{}}
	importer := NewProjectImporter(store)

	// A numeric metric entry is invalid; lenient mode drops it instead of
	// failing the record.
	result := importer.Import([]ProjectRecord{
		{
			Slug:    "mixed",
			Title:   "Mixed Metrics",
			Metrics: map[string]any{"dau": "Daily active users", "count": 42},
		},
	})

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, store.saved, 1)
	assert.Contains(t, store.saved[0].Metrics, "Daily active users")
	assert.NotContains(t, store.saved[0].Metrics, "42")
}

func TestProjectImporter_SaveFailureCounted(t *testing.T) {
	store := &mockProjectStore{bySlug: map[string]*entities.Project{}, failOn: "bad"}
	importer := NewProjectImporter(store)

	result := importer.Import([]ProjectRecord{
		{Slug: "bad", Title: "Bad"},
		{Slug: "good", Title: "Good"},
	})

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "good", store.saved[0].Slug)
}

func TestParseProjectsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"slug":"a","title":"A"},{"slug":"b","title":"B"}]`), 0o644))

	records, err := ParseProjectsFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Slug)

	_, err = ParseProjectsFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err = ParseProjectsFile(path)
	assert.Error(t, err)
}

type mockDocSaver struct {
	saved  map[string]string
	failOn string
}

func (m *mockDocSaver) Save(_ context.Context, key, body string) (*entities.MDXDocument, error) {
	if key == m.failOn {
		return nil, errors.New("upload failed")
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[key] = body
	return &entities.MDXDocument{Key: key}, nil
}

func TestDocImporter_ImportDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "case-studies"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.mdx"), []byte("# About"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "case-studies", "folio.mdx"), []byte("# Folio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	saver := &mockDocSaver{}
	importer := NewDocImporter(saver)

	result, err := importer.ImportDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "# About", saver.saved["about.mdx"])
	assert.Equal(t, "# Folio", saver.saved["case-studies/folio.mdx"])
	assert.NotContains(t, saver.saved, "notes.txt")
}

func TestDocImporter_SaveFailureCounted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.mdx"), []byte("ok"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.mdx"), []byte("bad"), 0o644))

	saver := &mockDocSaver{failOn: "bad.mdx"}
	importer := NewDocImporter(saver)

	result, err := importer.ImportDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad.mdx")
}
