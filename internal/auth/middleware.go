package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/entities"
)

// Middleware guards admin routes. When auth mode is "none" every request
// passes through; in "local" mode a valid admin session is required.
type Middleware struct {
	service  *Service
	sessions *SessionManager
}

// NewMiddleware creates authentication middleware.
func NewMiddleware(service *Service, sessions *SessionManager) *Middleware {
	return &Middleware{
		service:  service,
		sessions: sessions,
	}
}

// RequireAdmin rejects unauthenticated requests with a 401 JSON response.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.service.IsAuthEnabled() {
			c.Next()
			return
		}

		if !m.sessions.IsAuthenticated(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		admin, err := m.service.GetAdminByID(m.sessions.GetAdminID(c.Request))
		if err != nil {
			// Session points at a deleted admin. Drop it.
			_ = m.sessions.DestroySession(c.Request)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set("admin", admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin attached to the request by RequireAdmin,
// or nil when auth is disabled.
func CurrentAdmin(c *gin.Context) *entities.AdminUser {
	v, ok := c.Get("admin")
	if !ok {
		return nil
	}
	admin, ok := v.(*entities.AdminUser)
	if !ok {
		return nil
	}
	return admin
}
