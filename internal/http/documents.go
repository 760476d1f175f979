package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/documents"
)

type DocumentsController struct {
	service *documents.Service
}

func NewDocumentsController(service *documents.Service) *DocumentsController {
	return &DocumentsController{service: service}
}

// List returns every document row. ?deleted=true includes soft-deleted rows.
// GET /api/admin/mdx/documents
func (dc *DocumentsController) List(c *gin.Context) {
	includeDeleted := c.Query("deleted") == "true"
	docs, err := dc.service.List(includeDeleted)
	if err != nil {
		respondInternalError(c, err, "list documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// ListAvailable returns documents not referenced by any article or case
// study, for the admin "attach body" picker.
// GET /api/admin/mdx/documents/available
func (dc *DocumentsController) ListAvailable(c *gin.Context) {
	docs, err := dc.service.ListAvailable()
	if err != nil {
		respondInternalError(c, err, "list available documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

type documentSaveRequest struct {
	Key     string `json:"key" binding:"required"`
	Content string `json:"content"`
}

// Save uploads MDX content and upserts the document row.
// POST /api/admin/mdx/documents
func (dc *DocumentsController) Save(c *gin.Context) {
	var req documentSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "key is required")
		return
	}

	doc, err := dc.service.Save(c.Request.Context(), req.Key, req.Content)
	if err != nil {
		if errors.Is(err, documents.ErrEmptyKey) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "save document")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SoftDelete flags a document as deleted without touching storage.
// DELETE /api/admin/mdx/documents/:id
func (dc *DocumentsController) SoftDelete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := dc.service.SoftDelete(id); err != nil {
		respondInternalError(c, err, "soft delete document")
		return
	}
	respondSuccess(c, "document deleted")
}

// Restore clears the deleted flag.
// POST /api/admin/mdx/documents/:id/restore
func (dc *DocumentsController) Restore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := dc.service.Restore(id); err != nil {
		respondInternalError(c, err, "restore document")
		return
	}
	respondSuccess(c, "document restored")
}

// HardDelete removes the row and purges the stored object.
// DELETE /api/admin/mdx/documents/:id/permanent
func (dc *DocumentsController) HardDelete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := dc.service.HardDelete(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "hard delete document")
		return
	}
	respondSuccess(c, "document permanently deleted")
}

// Content returns the raw MDX body for a key. The key goes through the
// content resolver, so full public URLs and storage-relative paths work too.
// GET /api/admin/mdx/content?key=
func (dc *DocumentsController) Content(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		respondBadRequest(c, "key is required")
		return
	}

	doc, err := dc.service.GetContent(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, documents.ErrEmptyKey) {
			respondBadRequest(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "document")
			return
		}
		respondInternalError(c, err, "get document content")
		return
	}

	c.JSON(http.StatusOK, doc)
}

type previewRequest struct {
	Source string `json:"source" binding:"required"`
}

// Preview renders MDX source to HTML for the admin editor.
// POST /api/admin/mdx/preview
func (dc *DocumentsController) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "source is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": content.RenderPreview(req.Source)})
}
