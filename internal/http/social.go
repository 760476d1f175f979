package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/entities"
)

// SocialStore defines database operations for the curated social feed.
type SocialStore interface {
	List(limit int) ([]entities.SocialPost, error)
	Save(post *entities.SocialPost) error
	Delete(id uint) error
}

type SocialController struct {
	store SocialStore
}

func NewSocialController(store SocialStore) *SocialController {
	return &SocialController{store: store}
}

// Feed returns the public social feed, newest first.
// GET /api/social-feed
func (sc *SocialController) Feed(c *gin.Context) {
	limit, _ := parsePagination(c, 20, 100)
	posts, err := sc.store.List(limit)
	if err != nil {
		respondInternalError(c, err, "list social feed")
		return
	}
	c.JSON(http.StatusOK, posts)
}

type socialPostRequest struct {
	Platform   string     `json:"platform" binding:"required"`
	ExternalID string     `json:"external_id"`
	Body       string     `json:"body" binding:"required"`
	Link       string     `json:"link"`
	PostedAt   *time.Time `json:"posted_at"`
}

// Save creates or updates a social post.
// POST /api/admin/social-posts, PUT /api/admin/social-posts/:id
func (sc *SocialController) Save(c *gin.Context) {
	var req socialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "platform and body are required")
		return
	}

	var id uint
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return
		}
	}

	postedAt := time.Now()
	if req.PostedAt != nil {
		postedAt = *req.PostedAt
	}

	post := &entities.SocialPost{
		ID:         id,
		Platform:   req.Platform,
		ExternalID: req.ExternalID,
		Body:       req.Body,
		Link:       req.Link,
		PostedAt:   postedAt,
	}
	if err := sc.store.Save(post); err != nil {
		respondInternalError(c, err, "save social post")
		return
	}

	if id == 0 {
		respondCreated(c, post)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete removes a social post.
// DELETE /api/admin/social-posts/:id
func (sc *SocialController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := sc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete social post")
		return
	}
	respondSuccess(c, "social post deleted")
}
