package http

import (
	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session middleware runs globally so the auth endpoints can read and
	// write session cookies; public routes never touch the session.
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	var csrfProtect gin.HandlerFunc
	if len(cfg.CSRFSecret) > 0 {
		csrfProtect = auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies)
	}

	// Controllers
	health := NewHealthController(cfg.Database, cfg.Storage, cfg.Version)
	projects := NewProjectsController(cfg.ProjectStore, cfg.Featured.ProjectsCap)
	caseStudies := NewCaseStudiesController(cfg.CaseStudyStore, cfg.Documents, cfg.Featured.CaseStudiesCap)
	articles := NewArticlesController(cfg.ArticleStore, cfg.Documents, cfg.Featured.ArticlesCap)
	site := NewSiteController(cfg.SiteStore, cfg.Auditor)
	contactCtrl := NewContactController(cfg.ContactLinkStore, cfg.ContactService)
	social := NewSocialController(cfg.SocialStore)
	resumesCtrl := NewResumesController(cfg.Resumes)
	docs := NewDocumentsController(cfg.Documents)
	notifications := NewNotificationsController(cfg.NotificationStore, cfg.Dispatcher, cfg.Auditor)
	auditCtrl := NewAuditController(cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public API
	router.GET("/api/projects", projects.ListPublished)
	router.GET("/api/projects/:slug", projects.GetBySlug)
	router.GET("/api/case-studies", caseStudies.ListPublished)
	router.GET("/api/case-studies/:slug", caseStudies.GetBySlug)
	router.GET("/api/articles", articles.ListPublished)
	router.GET("/api/articles/:slug", articles.GetBySlug)
	router.GET("/api/profile", site.Profile)
	router.GET("/api/contact-links", contactCtrl.ListLinks)
	router.GET("/api/social-feed", social.Feed)
	router.POST("/api/contact", contactCtrl.Submit)
	router.GET("/api/resumes/:vertical/download", resumesCtrl.Download)

	// Auth endpoints. Login is deliberately outside CSRF: there is no
	// session to ride yet and credentials plus rate limiting gate it.
	if cfg.AuthHandlers != nil {
		router.POST("/api/auth/login", cfg.AuthHandlers.Login)

		authGroup := router.Group("/api/auth")
		if csrfProtect != nil {
			authGroup.Use(csrfProtect)
		}
		authGroup.GET("/session", cfg.AuthHandlers.Session)
		authGroup.POST("/logout", cfg.AuthHandlers.Logout)
	}

	// Admin API: session-gated, CSRF-protected.
	admin := router.Group("/api/admin")
	if csrfProtect != nil {
		admin.Use(csrfProtect)
	}
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}

	admin.GET("/projects", projects.ListAll)
	admin.GET("/projects/:id", projects.Get)
	admin.POST("/projects", projects.Save)
	admin.PUT("/projects/:id", projects.Save)
	admin.DELETE("/projects/:id", projects.Delete)

	admin.GET("/case-studies", caseStudies.ListAll)
	admin.GET("/case-studies/:id", caseStudies.Get)
	admin.POST("/case-studies", caseStudies.Save)
	admin.PUT("/case-studies/:id", caseStudies.Save)
	admin.DELETE("/case-studies/:id", caseStudies.Delete)

	admin.GET("/articles", articles.ListAll)
	admin.GET("/articles/:id", articles.Get)
	admin.POST("/articles", articles.Save)
	admin.PUT("/articles/:id", articles.Save)
	admin.DELETE("/articles/:id", articles.Delete)

	admin.GET("/resumes", resumesCtrl.List)
	admin.GET("/resumes/:id", resumesCtrl.Get)
	admin.POST("/resumes", resumesCtrl.Save)
	admin.PUT("/resumes/:id", resumesCtrl.Save)
	admin.DELETE("/resumes/:id", resumesCtrl.Delete)

	admin.GET("/contact-requests", contactCtrl.ListRequests)
	admin.POST("/contact-links", contactCtrl.SaveLink)
	admin.PUT("/contact-links/:id", contactCtrl.SaveLink)
	admin.DELETE("/contact-links/:id", contactCtrl.DeleteLink)

	admin.POST("/social-posts", social.Save)
	admin.PUT("/social-posts/:id", social.Save)
	admin.DELETE("/social-posts/:id", social.Delete)

	admin.GET("/mdx/documents", docs.List)
	admin.GET("/mdx/documents/available", docs.ListAvailable)
	admin.POST("/mdx/documents", docs.Save)
	admin.DELETE("/mdx/documents/:id", docs.SoftDelete)
	admin.POST("/mdx/documents/:id/restore", docs.Restore)
	admin.DELETE("/mdx/documents/:id/permanent", docs.HardDelete)
	admin.GET("/mdx/content", docs.Content)
	admin.POST("/mdx/preview", docs.Preview)

	admin.GET("/notifications/log", notifications.Log)
	admin.POST("/notifications/test", notifications.Test)
	admin.GET("/notifications/settings", notifications.GetSettings)
	admin.PUT("/notifications/settings", notifications.SaveSettings)

	admin.GET("/site-settings", site.GetSettings)
	admin.PUT("/site-settings", site.SaveSettings)
	admin.PUT("/profile", site.SaveProfile)

	admin.GET("/audit", auditCtrl.GetAuditEvents)

	return router
}
