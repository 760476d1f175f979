package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/entities"
)

// CaseStudyStore defines database operations for case study management.
type CaseStudyStore interface {
	GetByID(id uint) (*entities.CaseStudy, error)
	GetBySlug(slug string) (*entities.CaseStudy, error)
	List(publishedOnly bool) ([]entities.CaseStudy, error)
	CountFeatured(excludeID uint) (int64, error)
	Save(cs *entities.CaseStudy) error
	Delete(id uint) error
}

type CaseStudiesController struct {
	store       CaseStudyStore
	docs        *documents.Service
	featuredCap int
}

func NewCaseStudiesController(store CaseStudyStore, docs *documents.Service, featuredCap int) *CaseStudiesController {
	return &CaseStudiesController{store: store, docs: docs, featuredCap: featuredCap}
}

// caseStudyWithBody is the public detail payload: the row plus its resolved
// MDX body. Body is nil with BodyError set when the content bucket is
// unreachable; the page renders the error state instead of failing.
type caseStudyWithBody struct {
	entities.CaseStudy
	Body      *string `json:"body"`
	BodyError string  `json:"body_error,omitempty"`
	BodyURL   string  `json:"body_url,omitempty"`
}

// ListPublished returns published case studies.
// GET /api/case-studies
func (cc *CaseStudiesController) ListPublished(c *gin.Context) {
	studies, err := cc.store.List(true)
	if err != nil {
		respondInternalError(c, err, "list case studies")
		return
	}
	c.JSON(http.StatusOK, studies)
}

// GetBySlug returns one published case study with its resolved body.
// GET /api/case-studies/:slug
func (cc *CaseStudiesController) GetBySlug(c *gin.Context) {
	cs, err := cc.store.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "case study")
			return
		}
		respondInternalError(c, err, "get case study")
		return
	}
	if !cs.Published {
		respondNotFound(c, "case study")
		return
	}

	result := caseStudyWithBody{CaseStudy: *cs}
	if cs.BodyPath != "" && cc.docs != nil {
		doc, err := cc.docs.GetContent(c.Request.Context(), cs.BodyPath)
		if err != nil {
			result.BodyError = "content not found"
		} else {
			result.Body = doc.Content
			result.BodyError = doc.ContentError
			result.BodyURL = doc.PublicURL
		}
	}

	c.JSON(http.StatusOK, result)
}

// ListAll returns every case study including drafts.
// GET /api/admin/case-studies
func (cc *CaseStudiesController) ListAll(c *gin.Context) {
	studies, err := cc.store.List(false)
	if err != nil {
		respondInternalError(c, err, "list case studies")
		return
	}
	c.JSON(http.StatusOK, studies)
}

// Get returns one case study by ID.
// GET /api/admin/case-studies/:id
func (cc *CaseStudiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cs, err := cc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "case study")
			return
		}
		respondInternalError(c, err, "get case study")
		return
	}
	c.JSON(http.StatusOK, cs)
}

type caseStudyRequest struct {
	Slug         string `json:"slug" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Client       string `json:"client"`
	Summary      string `json:"summary"`
	HeroImageKey string `json:"hero_image_key"`
	BodyPath     string `json:"body_path"`
	Metrics      any    `json:"metrics"`
	Featured     bool   `json:"featured"`
	Published    bool   `json:"published"`
}

// Save creates or updates a case study.
// POST /api/admin/case-studies, PUT /api/admin/case-studies/:id
func (cc *CaseStudiesController) Save(c *gin.Context) {
	var req caseStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "slug and title are required")
		return
	}

	var id uint
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return
		}
	}

	metrics, err := content.CoerceMetrics(req.Metrics, true)
	if err != nil {
		respondBadRequest(c, "invalid metrics: "+err.Error())
		return
	}
	metricsJSON, err := content.MetricsToJSON(metrics)
	if err != nil {
		respondInternalError(c, err, "encode metrics")
		return
	}

	if req.Featured {
		count, err := cc.store.CountFeatured(id)
		if err != nil {
			respondInternalError(c, err, "count featured case studies")
			return
		}
		if count >= int64(cc.featuredCap) {
			respondBadRequest(c, fmt.Sprintf("featured case study limit of %d reached", cc.featuredCap))
			return
		}
	}

	cs := &entities.CaseStudy{
		ID:           id,
		Slug:         req.Slug,
		Title:        req.Title,
		Client:       req.Client,
		Summary:      req.Summary,
		HeroImageKey: req.HeroImageKey,
		BodyPath:     req.BodyPath,
		Metrics:      metricsJSON,
		Featured:     req.Featured,
		Published:    req.Published,
	}

	if err := cc.store.Save(cs); err != nil {
		respondInternalError(c, err, "save case study")
		return
	}

	if id == 0 {
		respondCreated(c, cs)
		return
	}
	c.JSON(http.StatusOK, cs)
}

// Delete removes a case study.
// DELETE /api/admin/case-studies/:id
func (cc *CaseStudiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete case study")
		return
	}
	respondSuccess(c, "case study deleted")
}
