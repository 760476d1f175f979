package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/entities"
)

// ArticleStore defines database operations for article management.
type ArticleStore interface {
	GetByID(id uint) (*entities.Article, error)
	GetBySlug(slug string) (*entities.Article, error)
	List(publishedOnly bool) ([]entities.Article, error)
	CountFeatured(excludeID uint) (int64, error)
	Save(article *entities.Article, relatedCaseStudyIDs, relatedProjectIDs []uint) error
	Delete(id uint) error
}

type ArticlesController struct {
	store       ArticleStore
	docs        *documents.Service
	featuredCap int
}

func NewArticlesController(store ArticleStore, docs *documents.Service, featuredCap int) *ArticlesController {
	return &ArticlesController{store: store, docs: docs, featuredCap: featuredCap}
}

type articleWithBody struct {
	entities.Article
	Body      *string `json:"body"`
	BodyError string  `json:"body_error,omitempty"`
	BodyURL   string  `json:"body_url,omitempty"`
}

// ListPublished returns published articles.
// GET /api/articles
func (ac *ArticlesController) ListPublished(c *gin.Context) {
	articles, err := ac.store.List(true)
	if err != nil {
		respondInternalError(c, err, "list articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetBySlug returns one published article with its resolved body.
// GET /api/articles/:slug
func (ac *ArticlesController) GetBySlug(c *gin.Context) {
	article, err := ac.store.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "get article")
		return
	}
	if !article.Published {
		respondNotFound(c, "article")
		return
	}

	result := articleWithBody{Article: *article}
	if article.BodyPath != "" && ac.docs != nil {
		doc, err := ac.docs.GetContent(c.Request.Context(), article.BodyPath)
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

// ListAll returns every article including drafts.
// GET /api/admin/articles
func (ac *ArticlesController) ListAll(c *gin.Context) {
	articles, err := ac.store.List(false)
	if err != nil {
		respondInternalError(c, err, "list articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get returns one article by ID.
// GET /api/admin/articles/:id
func (ac *ArticlesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	article, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "get article")
		return
	}
	c.JSON(http.StatusOK, article)
}

type articleRequest struct {
	Slug                string   `json:"slug" binding:"required"`
	Title               string   `json:"title" binding:"required"`
	Excerpt             string   `json:"excerpt"`
	BodyPath            string   `json:"body_path"`
	Tags                []string `json:"tags"`
	Featured            bool     `json:"featured"`
	Published           bool     `json:"published"`
	RelatedCaseStudyIDs []uint   `json:"related_case_study_ids"`
	RelatedProjectIDs   []uint   `json:"related_project_ids"`
}

// Save creates or updates an article. Publishing for the first time stamps
// published_at.
// POST /api/admin/articles, PUT /api/admin/articles/:id
func (ac *ArticlesController) Save(c *gin.Context) {
	var req articleRequest
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

	if req.Featured {
		count, err := ac.store.CountFeatured(id)
		if err != nil {
			respondInternalError(c, err, "count featured articles")
			return
		}
		if count >= int64(ac.featuredCap) {
			respondBadRequest(c, fmt.Sprintf("featured article limit of %d reached", ac.featuredCap))
			return
		}
	}

	article := &entities.Article{
		ID:        id,
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		BodyPath:  req.BodyPath,
		Tags:      content.JoinCSV(req.Tags),
		Featured:  req.Featured,
		Published: req.Published,
	}

	if id != 0 {
		if existing, err := ac.store.GetByID(id); err == nil {
			article.PublishedAt = existing.PublishedAt
		}
	}
	if req.Published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := ac.store.Save(article, req.RelatedCaseStudyIDs, req.RelatedProjectIDs); err != nil {
		respondInternalError(c, err, "save article")
		return
	}

	if id == 0 {
		respondCreated(c, article)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete removes an article.
// DELETE /api/admin/articles/:id
func (ac *ArticlesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete article")
		return
	}
	respondSuccess(c, "article deleted")
}
