package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/database"
	dbdocuments "github.com/antonbelau/folio/internal/database/documents"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/entities"
)

// memoryStore is an in-memory documents.ObjectStore for controller tests.
type memoryStore struct {
	objects map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string]string)}
}

func (m *memoryStore) UploadText(ctx context.Context, bucket, key, body string) error {
	m.objects[bucket+"/"+key] = body
	return nil
}

func (m *memoryStore) DownloadText(ctx context.Context, bucket, key string) (string, error) {
	body, ok := m.objects[bucket+"/"+key]
	if !ok {
		return "", errors.New("object not found")
	}
	return body, nil
}

func (m *memoryStore) RemoveObject(ctx context.Context, bucket, key string) error {
	delete(m.objects, bucket+"/"+key)
	return nil
}

func (m *memoryStore) PublicURL(bucket, key string) string {
	return "https://cdn.example.com/" + bucket + "/" + key
}

func (m *memoryStore) ContentBucket() string { return "content" }

func newDocumentsRouter(db *database.Database, store documents.ObjectStore) *gin.Engine {
	repo := dbdocuments.NewRepository(db.DB)
	resolver := content.NewResolver("https://cdn.example.com", "content")
	svc := documents.NewService(repo, store, resolver, nil)
	controller := NewDocumentsController(svc)

	router := gin.New()
	router.GET("/api/admin/mdx/documents", controller.List)
	router.POST("/api/admin/mdx/documents", controller.Save)
	router.DELETE("/api/admin/mdx/documents/:id", controller.SoftDelete)
	router.POST("/api/admin/mdx/documents/:id/restore", controller.Restore)
	router.GET("/api/admin/mdx/content", controller.Content)
	router.POST("/api/admin/mdx/preview", controller.Preview)
	return router
}

func TestDocumentsController_SaveAndContent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	router := newDocumentsRouter(db, newMemoryStore())

	body := `{"key": "articles/hello.mdx", "content": "# Hello"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/mdx/documents", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Fetch back by key.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/admin/mdx/content?key=articles%2Fhello.mdx", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var doc entities.DocumentContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.NotNil(t, doc.Content)
	assert.Equal(t, "# Hello", *doc.Content)

	// A full public URL resolves to the same document.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET",
		"/api/admin/mdx/content?key="+
			"https%3A%2F%2Fcdn.example.com%2Fcontent%2Farticles%2Fhello.mdx", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentsController_ContentValidation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	router := newDocumentsRouter(db, newMemoryStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/mdx/content", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/admin/mdx/content?key=missing.mdx", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentsController_SoftDeleteAndRestore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	router := newDocumentsRouter(db, newMemoryStore())

	body := `{"key": "articles/gone.mdx", "content": "content"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/mdx/documents", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/admin/mdx/documents/1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Soft-deleted documents are invisible to key lookup.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/admin/mdx/content?key=articles%2Fgone.mdx", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/admin/mdx/documents/1/restore", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/admin/mdx/content?key=articles%2Fgone.mdx", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentsController_Preview(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	router := newDocumentsRouter(db, newMemoryStore())

	body := `{"source": "# Title\n\nSome **bold** text."}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/mdx/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["html"], "<h1>Title</h1>")
	assert.Contains(t, resp["html"], "<strong>bold</strong>")

	// Missing source is a validation error.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/admin/mdx/preview", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
