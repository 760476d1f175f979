package http

import (
	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/auth"
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/contact"
	"github.com/antonbelau/folio/internal/database"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/notify"
	"github.com/antonbelau/folio/internal/resumes"
	"github.com/antonbelau/folio/internal/storage"
)

// RouterConfig carries every dependency NewRouter needs. One struct instead
// of a parameter list keeps wiring in the entrypoint readable and lets
// controller tests pass only what they exercise.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Storage  *storage.Client
	Auditor  *audit.Service

	// Entity stores
	ProjectStore      ProjectStore
	CaseStudyStore    CaseStudyStore
	ArticleStore      ArticleStore
	ContactLinkStore  ContactLinkStore
	SocialStore       SocialStore
	SiteStore         SiteStore
	NotificationStore NotificationStore

	// Domain services
	Documents      *documents.Service
	Resumes        *resumes.Service
	ContactService *contact.Service
	Dispatcher     *notify.Dispatcher

	// Authentication. Always set; the middleware passes everything through
	// when the auth mode is "none". An empty CSRFSecret disables CSRF.
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthHandlers   *auth.Handlers
	CSRFSecret     []byte
	SecureCookies  bool

	// Featured caps
	Featured config.Featured

	// Application info
	Version string
}
