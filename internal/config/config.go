package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (local development only)
	AuthModeLocal AuthMode = "local" // Local admin account with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Content
		Auth
		Notify
		Turnstile
		Featured
		Audit
		Tasks
		Sweep
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		Environment              string // "production", "staging", "development"
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string // SQLite file path, used when DSN is empty
		DSN  string // Postgres DSN for hosted deployments
	}

	// Storage configures the S3-compatible object storage backend.
	// AccessKeyID/SecretAccessKey are service-role credentials: they bypass
	// bucket policies and are required for signed resume URLs.
	Storage struct {
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		UseSSL          bool
		Region          string
		PublicBaseURL   string // Public URL prefix for the public buckets
		ImagesBucket    string
		ContentBucket   string
		ResumesBucket   string
	}

	Content struct {
		CompiledDir string // Directory of build-time MDX documents, optional
	}

	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}

	// Notify holds environment fallbacks for notification channels.
	// Values stored through the admin settings form take priority.
	Notify struct {
		EmailFrom      string
		EmailTo        string
		ResendAPIKey   string
		TelegramToken  string
		TelegramChatID string
		SlackWebhook   string
		DiscordWebhook string
	}

	Turnstile struct {
		SiteKey   string
		SecretKey string
		Enabled   bool // Force-enable outside production; always on in production when keys are set
	}

	// Featured caps how many entities of each type may be flagged as featured.
	Featured struct {
		ProjectsCap    int
		CaseStudiesCap int
		ArticlesCap    int
	}

	Audit struct {
		RetentionDays int // Days to keep audit events (default: 30)
	}

	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}

	Sweep struct {
		Enabled  bool
		Schedule string // Cron format: "0 4 * * *" = daily at 04:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("environment", "development")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	// Object storage defaults
	v.SetDefault("storage_endpoint", "")
	v.SetDefault("storage_access_key_id", "")
	v.SetDefault("storage_secret_access_key", "")
	v.SetDefault("storage_use_ssl", true)
	v.SetDefault("storage_region", "")
	v.SetDefault("storage_public_base_url", "")
	v.SetDefault("storage_images_bucket", DefaultImagesBucket)
	v.SetDefault("storage_content_bucket", DefaultContentBucket)
	v.SetDefault("storage_resumes_bucket", DefaultResumesBucket)

	v.SetDefault("content_compiled_dir", "")

	// Auth defaults
	v.SetDefault("auth_mode", "local")
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Notification channel fallbacks
	v.SetDefault("notify_email_from", "")
	v.SetDefault("notify_email_to", "")
	v.SetDefault("resend_api_key", "")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("telegram_chat_id", "")
	v.SetDefault("slack_webhook_url", "")
	v.SetDefault("discord_webhook_url", "")

	// Turnstile defaults
	v.SetDefault("turnstile_site_key", "")
	v.SetDefault("turnstile_secret_key", "")
	v.SetDefault("turnstile_enabled", false)

	// Featured cap defaults
	v.SetDefault("featured_cap_projects", DefaultFeaturedProjectsCap)
	v.SetDefault("featured_cap_case_studies", DefaultFeaturedCaseStudiesCap)
	v.SetDefault("featured_cap_articles", DefaultFeaturedArticlesCap)

	v.SetDefault("audit_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Storage sweep defaults
	v.SetDefault("sweep_enabled", true)
	v.SetDefault("sweep_schedule", "0 4 * * *") // Daily at 04:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Environment:              v.GetString("ENVIRONMENT"),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
			DSN:  v.GetString("DATABASE_DSN"),
		},
		Storage: Storage{
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			UseSSL:          v.GetBool("STORAGE_USE_SSL"),
			Region:          v.GetString("STORAGE_REGION"),
			PublicBaseURL:   v.GetString("STORAGE_PUBLIC_BASE_URL"),
			ImagesBucket:    v.GetString("STORAGE_IMAGES_BUCKET"),
			ContentBucket:   v.GetString("STORAGE_CONTENT_BUCKET"),
			ResumesBucket:   v.GetString("STORAGE_RESUMES_BUCKET"),
		},
		Content: Content{
			CompiledDir: v.GetString("CONTENT_COMPILED_DIR"),
		},
		Auth: Auth{
			Mode:             AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:    v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Notify: Notify{
			EmailFrom:      v.GetString("NOTIFY_EMAIL_FROM"),
			EmailTo:        v.GetString("NOTIFY_EMAIL_TO"),
			ResendAPIKey:   v.GetString("RESEND_API_KEY"),
			TelegramToken:  v.GetString("TELEGRAM_BOT_TOKEN"),
			TelegramChatID: v.GetString("TELEGRAM_CHAT_ID"),
			SlackWebhook:   v.GetString("SLACK_WEBHOOK_URL"),
			DiscordWebhook: v.GetString("DISCORD_WEBHOOK_URL"),
		},
		Turnstile: Turnstile{
			SiteKey:   v.GetString("TURNSTILE_SITE_KEY"),
			SecretKey: v.GetString("TURNSTILE_SECRET_KEY"),
			Enabled:   v.GetBool("TURNSTILE_ENABLED"),
		},
		Featured: Featured{
			ProjectsCap:    v.GetInt("FEATURED_CAP_PROJECTS"),
			CaseStudiesCap: v.GetInt("FEATURED_CAP_CASE_STUDIES"),
			ArticlesCap:    v.GetInt("FEATURED_CAP_ARTICLES"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Sweep: Sweep{
			Enabled:  v.GetBool("SWEEP_ENABLED"),
			Schedule: v.GetString("SWEEP_SCHEDULE"),
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Global.Environment == "production"
}

// TurnstileActive reports whether contact submissions must pass Turnstile.
// Always active in production when keys are configured; opt-in elsewhere.
func (c *Config) TurnstileActive() bool {
	if c.Turnstile.SecretKey == "" {
		return false
	}
	return c.IsProduction() || c.Turnstile.Enabled
}
