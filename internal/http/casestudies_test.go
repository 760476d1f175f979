package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/database"
	"github.com/antonbelau/folio/internal/database/casestudies"
	dbdocuments "github.com/antonbelau/folio/internal/database/documents"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/entities"
)

func newCaseStudiesRouter(t *testing.T, db *database.Database, store *memoryStore) *gin.Engine {
	t.Helper()
	docSvc := documents.NewService(
		dbdocuments.NewRepository(db.DB),
		store,
		content.NewResolver("https://cdn.example.com", "content"),
		nil,
	)
	controller := NewCaseStudiesController(casestudies.NewRepository(db.DB), docSvc, 3)

	router := gin.New()
	router.GET("/api/case-studies", controller.ListPublished)
	router.GET("/api/case-studies/:slug", controller.GetBySlug)
	return router
}

func TestCaseStudiesController_BodyResolution(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newMemoryStore()
	store.objects["content/case-studies/acme.mdx"] = "# The Acme Rebuild"
	require.NoError(t, db.DB.Create(&entities.MDXDocument{
		Key:         "case-studies/acme.mdx",
		StoragePath: "case-studies/acme.mdx",
	}).Error)

	repo := casestudies.NewRepository(db.DB)
	require.NoError(t, repo.Save(&entities.CaseStudy{
		Slug:      "acme",
		Title:     "Acme",
		BodyPath:  "case-studies/acme.mdx",
		Published: true,
	}))

	router := newCaseStudiesRouter(t, db, store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/case-studies/acme", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Slug      string  `json:"slug"`
		Body      *string `json:"body"`
		BodyError string  `json:"body_error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acme", resp.Slug)
	require.NotNil(t, resp.Body)
	assert.Equal(t, "# The Acme Rebuild", *resp.Body)
	assert.Empty(t, resp.BodyError)
}

func TestCaseStudiesController_BodyDegradesOnStorageFailure(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// Row exists but the object does not: the page still renders.
	store := newMemoryStore()
	require.NoError(t, db.DB.Create(&entities.MDXDocument{
		Key:         "case-studies/lost.mdx",
		StoragePath: "case-studies/lost.mdx",
	}).Error)

	repo := casestudies.NewRepository(db.DB)
	require.NoError(t, repo.Save(&entities.CaseStudy{
		Slug:      "lost",
		Title:     "Lost",
		BodyPath:  "case-studies/lost.mdx",
		Published: true,
	}))

	router := newCaseStudiesRouter(t, db, store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/case-studies/lost", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Body      *string `json:"body"`
		BodyError string  `json:"body_error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Body)
	assert.NotEmpty(t, resp.BodyError)
}

func TestCaseStudiesController_UnpublishedHidden(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := casestudies.NewRepository(db.DB)
	require.NoError(t, repo.Save(&entities.CaseStudy{Slug: "draft", Title: "Draft"}))

	router := newCaseStudiesRouter(t, db, newMemoryStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/case-studies/draft", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
