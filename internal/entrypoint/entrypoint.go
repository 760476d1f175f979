// Package entrypoint wires the application together and runs the HTTP
// server.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/auth"
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/contact"
	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/database"
	"github.com/antonbelau/folio/internal/database/articles"
	dbaudit "github.com/antonbelau/folio/internal/database/audit"
	"github.com/antonbelau/folio/internal/database/casestudies"
	"github.com/antonbelau/folio/internal/database/contacts"
	dbdocuments "github.com/antonbelau/folio/internal/database/documents"
	"github.com/antonbelau/folio/internal/database/notifications"
	"github.com/antonbelau/folio/internal/database/projects"
	dbresumes "github.com/antonbelau/folio/internal/database/resumes"
	"github.com/antonbelau/folio/internal/database/site"
	"github.com/antonbelau/folio/internal/database/social"
	"github.com/antonbelau/folio/internal/documents"
	http_controllers "github.com/antonbelau/folio/internal/http"
	"github.com/antonbelau/folio/internal/notify"
	"github.com/antonbelau/folio/internal/resumes"
	"github.com/antonbelau/folio/internal/scheduler"
	"github.com/antonbelau/folio/internal/storage"
	"github.com/antonbelau/folio/internal/tasks"
	"github.com/antonbelau/folio/internal/turnstile"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the HTTP listener so in-flight tasks
	// drain inside the timeout.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Folio v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if store.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := store.EnsureBuckets(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to ensure storage buckets: %v", err)
		}
		cancel()
	} else {
		log.Printf("WARNING: Object storage is not configured. Document bodies and resume downloads will be unavailable.")
	}

	compiled, err := content.LoadCompiledSet(cfg.Content.CompiledDir)
	if err != nil {
		log.Fatalf("Failed to load compiled documents: %v", err)
	}
	resolver := content.NewResolver(cfg.Storage.PublicBaseURL, cfg.Storage.ContentBucket)

	// Repositories
	projectRepo := projects.NewRepository(db.DB)
	caseStudyRepo := casestudies.NewRepository(db.DB)
	articleRepo := articles.NewRepository(db.DB)
	documentRepo := dbdocuments.NewRepository(db.DB)
	contactRepo := contacts.NewRepository(db.DB)
	notificationRepo := notifications.NewRepository(db.DB)
	resumeRepo := dbresumes.NewRepository(db.DB)
	siteRepo := site.NewRepository(db.DB)
	socialRepo := social.NewRepository(db.DB)
	auditRepo := dbaudit.NewRepository(db.DB)

	// Domain services
	auditor := audit.NewService(auditRepo)
	documentService := documents.NewService(documentRepo, store, resolver, compiled)
	resumeService := resumes.NewService(resumeRepo, store, auditor)
	dispatcher := notify.NewDispatcher(notificationRepo, cfg.Notify)

	turnstileActive := cfg.Turnstile.SecretKey != "" &&
		(cfg.Turnstile.Enabled || cfg.Global.Environment == "production")
	if !turnstileActive {
		log.Printf("WARNING: Turnstile verification is disabled. Contact form submissions are not bot-checked.")
	}
	contactService := contact.NewService(
		contactRepo,
		turnstile.NewClient(cfg.Turnstile.SecretKey),
		turnstileActive,
		dispatcher,
	)

	// Task queue
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var sweepScheduler *scheduler.SweepScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		inventories := map[string]tasks.KeyInventory{
			cfg.Storage.ContentBucket: documentRepo.AllStoragePaths,
			cfg.Storage.ResumesBucket: resumeRepo.AllStorageKeys,
		}
		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditor),
			tasks.NewCleanupNotificationLogQueue(notificationRepo),
			tasks.NewSweepOrphansQueue(store, inventories),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		sweepScheduler = scheduler.NewSweepScheduler(taskClient, cfg.Sweep, cfg.Audit,
			[]string{cfg.Storage.ContentBucket, cfg.Storage.ResumesBucket})
		if err := sweepScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start sweep scheduler: %v", err)
		}
	}

	// Authentication. The service and middleware are always constructed;
	// in "none" mode the middleware passes every request through.
	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	authMiddleware := auth.NewMiddleware(authService, sessionManager)
	loginLimiter := auth.NewRateLimiter(auth.RateLimitConfig{})
	authHandlers := auth.NewHandlers(authService, sessionManager, loginLimiter, auditor)

	var csrfSecret []byte
	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist sessions across restarts)")
		}

		hasAdmin, _ := authService.HasAdmin()
		if !hasAdmin {
			log.Printf("No admin account found. Create one with the create-admin command.")
		}
	} else {
		log.Printf("Authentication mode: none (admin API is open)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Storage:  store,
		Auditor:  auditor,

		ProjectStore:      projectRepo,
		CaseStudyStore:    caseStudyRepo,
		ArticleStore:      articleRepo,
		ContactLinkStore:  contactRepo,
		SocialStore:       socialRepo,
		SiteStore:         siteRepo,
		NotificationStore: notificationRepo,

		Documents:      documentService,
		Resumes:        resumeService,
		ContactService: contactService,
		Dispatcher:     dispatcher,

		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		AuthHandlers:   authHandlers,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,

		Featured: cfg.Featured,
		Version:  version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sweepScheduler != nil {
			sweepScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		loginLimiter.Stop()
	}

	Serve(router, cfg, onShutdown)
}
