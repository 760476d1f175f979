package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/entities"
)

// ProjectStore defines database operations for project management.
type ProjectStore interface {
	GetByID(id uint) (*entities.Project, error)
	GetBySlug(slug string) (*entities.Project, error)
	List(publishedOnly bool) ([]entities.Project, error)
	CountFeatured(excludeID uint) (int64, error)
	Save(project *entities.Project, relatedCaseStudyIDs []uint) error
	Delete(id uint) error
}

type ProjectsController struct {
	store       ProjectStore
	featuredCap int
}

func NewProjectsController(store ProjectStore, featuredCap int) *ProjectsController {
	return &ProjectsController{store: store, featuredCap: featuredCap}
}

// ListPublished returns published projects for the public site.
// GET /api/projects
func (pc *ProjectsController) ListPublished(c *gin.Context) {
	projects, err := pc.store.List(true)
	if err != nil {
		respondInternalError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetBySlug returns one published project.
// GET /api/projects/:slug
func (pc *ProjectsController) GetBySlug(c *gin.Context) {
	project, err := pc.store.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "project")
			return
		}
		respondInternalError(c, err, "get project")
		return
	}
	if !project.Published {
		respondNotFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListAll returns every project including drafts.
// GET /api/admin/projects
func (pc *ProjectsController) ListAll(c *gin.Context) {
	projects, err := pc.store.List(false)
	if err != nil {
		respondInternalError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Get returns one project by ID.
// GET /api/admin/projects/:id
func (pc *ProjectsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	project, err := pc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "project")
			return
		}
		respondInternalError(c, err, "get project")
		return
	}
	c.JSON(http.StatusOK, project)
}

type projectRequest struct {
	Slug                string   `json:"slug" binding:"required"`
	Title               string   `json:"title" binding:"required"`
	Summary             string   `json:"summary"`
	Description         string   `json:"description"`
	HeroImageKey        string   `json:"hero_image_key"`
	TechStack           []string `json:"tech_stack"`
	Metrics             any      `json:"metrics"`
	RepoURL             string   `json:"repo_url"`
	LiveURL             string   `json:"live_url"`
	Featured            bool     `json:"featured"`
	FeaturedRank        int      `json:"featured_rank"`
	Published           bool     `json:"published"`
	RelatedCaseStudyIDs []uint   `json:"related_case_study_ids"`
}

// Save creates or updates a project. The ID comes from the optional :id
// parameter; metrics go through strict coercion so bad admin input is
// rejected rather than silently dropped.
// POST /api/admin/projects, PUT /api/admin/projects/:id
func (pc *ProjectsController) Save(c *gin.Context) {
	var req projectRequest
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
		count, err := pc.store.CountFeatured(id)
		if err != nil {
			respondInternalError(c, err, "count featured projects")
			return
		}
		if count >= int64(pc.featuredCap) {
			respondBadRequest(c, fmt.Sprintf("featured project limit of %d reached", pc.featuredCap))
			return
		}
	}

	project := &entities.Project{
		ID:           id,
		Slug:         req.Slug,
		Title:        req.Title,
		Summary:      req.Summary,
		Description:  req.Description,
		HeroImageKey: req.HeroImageKey,
		TechStack:    content.JoinCSV(req.TechStack),
		Metrics:      metricsJSON,
		RepoURL:      req.RepoURL,
		LiveURL:      req.LiveURL,
		Featured:     req.Featured,
		FeaturedRank: req.FeaturedRank,
		Published:    req.Published,
	}

	if err := pc.store.Save(project, req.RelatedCaseStudyIDs); err != nil {
		respondInternalError(c, err, "save project")
		return
	}

	if id == 0 {
		respondCreated(c, project)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete removes a project.
// DELETE /api/admin/projects/:id
func (pc *ProjectsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete project")
		return
	}
	respondSuccess(c, "project deleted")
}
