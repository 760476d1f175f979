package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/audit"
)

// Handlers exposes the JSON authentication endpoints.
type Handlers struct {
	service  *Service
	sessions *SessionManager
	limiter  *RateLimiter
	audit    *audit.Service
}

// NewHandlers creates authentication handlers.
func NewHandlers(service *Service, sessions *SessionManager, limiter *RateLimiter, auditSvc *audit.Service) *Handlers {
	return &Handlers{
		service:  service,
		sessions: sessions,
		limiter:  limiter,
		audit:    auditSvc,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	if !h.service.IsAuthEnabled() {
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "auth_mode": "none"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ip := c.ClientIP()

	if allowed, retryAfter := h.limiter.Allow(ip, req.Username); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many login attempts",
			"retry_after": retryAfter.String(),
		})
		return
	}

	admin, err := h.service.Authenticate(req.Username, req.Password)
	if err != nil {
		h.limiter.RecordFailure(ip, req.Username)
		h.audit.LogAuth("login", ip, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.limiter.RecordSuccess(ip, req.Username)

	if err := h.sessions.CreateSession(c.Request, admin); err != nil {
		log.Printf("Failed to create session for %s: %v", admin.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	h.audit.LogAuth("login", ip, true)

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      admin.Username,
	})
}

// Logout handles POST /api/auth/logout.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.sessions.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	h.audit.LogAuth("logout", c.ClientIP(), true)
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Session handles GET /api/auth/session. It reports the current auth state
// so the admin UI can decide whether to show the login form.
func (h *Handlers) Session(c *gin.Context) {
	if !h.service.IsAuthEnabled() {
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "auth_mode": "none"})
		return
	}

	if !h.sessions.IsAuthenticated(c.Request) {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "auth_mode": "local"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"auth_mode":     "local",
		"username":      h.sessions.GetUsername(c.Request),
		"csrf_token":    GetCSRFToken(c),
	})
}
