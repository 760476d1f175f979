package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/entities"
	"github.com/antonbelau/folio/internal/resumes"
)

type ResumesController struct {
	service *resumes.Service
}

func NewResumesController(service *resumes.Service) *ResumesController {
	return &ResumesController{service: service}
}

// Download redirects to a short-lived signed URL for the active resume of a
// vertical. The URL expiry is the service default; clients follow the 302
// immediately.
// GET /api/resumes/:vertical/download
func (rc *ResumesController) Download(c *gin.Context) {
	vertical := c.Param("vertical")

	url, err := rc.service.SignedURLForVertical(c.Request.Context(), vertical, 0)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNoActiveResume):
			respondNotFound(c, "resume")
		case errors.Is(err, resumes.ErrNotConfigured):
			respondError(c, http.StatusServiceUnavailable, "resume downloads are not available")
		default:
			respondInternalError(c, err, "sign resume url")
		}
		return
	}

	c.Redirect(http.StatusFound, url)
}

// List returns every resume.
// GET /api/admin/resumes
func (rc *ResumesController) List(c *gin.Context) {
	all, err := rc.service.List()
	if err != nil {
		respondInternalError(c, err, "list resumes")
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns one resume by ID.
// GET /api/admin/resumes/:id
func (rc *ResumesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resume, err := rc.service.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "resume")
			return
		}
		respondInternalError(c, err, "get resume")
		return
	}
	c.JSON(http.StatusOK, resume)
}

type resumeRequest struct {
	Label      string `json:"label" binding:"required"`
	Vertical   string `json:"vertical" binding:"required"`
	StorageKey string `json:"storage_key" binding:"required"`
	Active     bool   `json:"active"`
}

// Save creates or updates a resume. Activating one deactivates any other
// active resume of the same vertical.
// POST /api/admin/resumes, PUT /api/admin/resumes/:id
func (rc *ResumesController) Save(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "label, vertical and storage_key are required")
		return
	}

	var id uint
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return
		}
	}

	resume := &entities.Resume{
		ID:         id,
		Label:      req.Label,
		Vertical:   req.Vertical,
		StorageKey: req.StorageKey,
		Active:     req.Active,
	}
	if err := rc.service.Save(resume); err != nil {
		respondInternalError(c, err, "save resume")
		return
	}

	if id == 0 {
		respondCreated(c, resume)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// Delete removes a resume row. The stored PDF is kept; orphaned objects are
// collected by the sweep task.
// DELETE /api/admin/resumes/:id
func (rc *ResumesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.service.Delete(id); err != nil {
		respondInternalError(c, err, "delete resume")
		return
	}
	respondSuccess(c, "resume deleted")
}
