package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/contact"
	"github.com/antonbelau/folio/internal/entities"
)

// ContactLinkStore defines database operations for contact links.
type ContactLinkStore interface {
	ListLinks() ([]entities.ContactLink, error)
	SaveLink(link *entities.ContactLink) error
	DeleteLink(id uint) error
}

type ContactController struct {
	links   ContactLinkStore
	service *contact.Service
}

func NewContactController(links ContactLinkStore, service *contact.Service) *ContactController {
	return &ContactController{links: links, service: service}
}

// ListLinks returns the contact/social links for the public site.
// GET /api/contact-links
func (cc *ContactController) ListLinks(c *gin.Context) {
	links, err := cc.links.ListLinks()
	if err != nil {
		respondInternalError(c, err, "list contact links")
		return
	}
	c.JSON(http.StatusOK, links)
}

// Submit accepts a public contact-form submission. Validation and
// verification failures reject before any write; notification fan-out is
// best effort and never fails the request.
// POST /api/contact
func (cc *ContactController) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	req, err := cc.service.Submit(c.Request.Context(), sub, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrNotHuman):
			respondError(c, http.StatusForbidden, contact.ErrNotHuman.Error())
		case errors.Is(err, contact.ErrInvalidName),
			errors.Is(err, contact.ErrInvalidEmail),
			errors.Is(err, contact.ErrInvalidMessage),
			errors.Is(err, contact.ErrTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "submit contact request")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "message received",
		"public_id": req.PublicID,
	})
}

// ListRequests returns the admin inbox.
// GET /api/admin/contact-requests
func (cc *ContactController) ListRequests(c *gin.Context) {
	limit, offset := parsePagination(c, 50, 200)

	requests, total, err := cc.service.ListRequests(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list contact requests")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    requests,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(requests)) < total,
	})
}

type contactLinkRequest struct {
	Label     string `json:"label" binding:"required"`
	URL       string `json:"url" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// SaveLink creates or updates a contact link.
// POST /api/admin/contact-links, PUT /api/admin/contact-links/:id
func (cc *ContactController) SaveLink(c *gin.Context) {
	var req contactLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "label and url are required")
		return
	}

	var id uint
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return
		}
	}

	link := &entities.ContactLink{
		ID:        id,
		Label:     req.Label,
		URL:       req.URL,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := cc.links.SaveLink(link); err != nil {
		respondInternalError(c, err, "save contact link")
		return
	}

	if id == 0 {
		respondCreated(c, link)
		return
	}
	c.JSON(http.StatusOK, link)
}

// DeleteLink removes a contact link.
// DELETE /api/admin/contact-links/:id
func (cc *ContactController) DeleteLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.links.DeleteLink(id); err != nil {
		respondInternalError(c, err, "delete contact link")
		return
	}
	respondSuccess(c, "contact link deleted")
}
