package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/entities"
	"github.com/antonbelau/folio/internal/notify"
)

// NotificationStore defines database operations the notification admin
// endpoints need.
type NotificationStore interface {
	GetSettings() (*entities.NotificationSettings, error)
	SaveSettings(settings *entities.NotificationSettings) error
	RecentLog(limit int) ([]entities.NotificationLog, error)
	LogByEvent(eventID string) ([]entities.NotificationLog, error)
}

type NotificationsController struct {
	store      NotificationStore
	dispatcher *notify.Dispatcher
	auditor    *audit.Service
}

func NewNotificationsController(store NotificationStore, dispatcher *notify.Dispatcher, auditor *audit.Service) *NotificationsController {
	return &NotificationsController{store: store, dispatcher: dispatcher, auditor: auditor}
}

// Log returns recent notification log entries, newest first.
// GET /api/admin/notifications/log?limit=
func (nc *NotificationsController) Log(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	entries, err := nc.store.RecentLog(limit)
	if err != nil {
		respondInternalError(c, err, "read notification log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Test dispatches a test event across every channel and returns the four
// resulting log rows so the admin sees per-channel outcomes immediately.
// POST /api/admin/notifications/test
func (nc *NotificationsController) Test(c *gin.Context) {
	eventID := nc.dispatcher.SendTest(c.Request.Context())

	entries, err := nc.store.LogByEvent(eventID)
	if err != nil {
		respondInternalError(c, err, "read test dispatch log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id": eventID,
		"results":  entries,
	})
}

// GetSettings returns the notification settings singleton, or an empty
// settings object when notifications were never configured.
// GET /api/admin/notifications/settings
func (nc *NotificationsController) GetSettings(c *gin.Context) {
	settings, err := nc.store.GetSettings()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, entities.NotificationSettings{ID: entities.SingletonID})
			return
		}
		respondInternalError(c, err, "get notification settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type notificationSettingsRequest struct {
	EmailEnabled string `json:"email_enabled"`
	EmailFrom    string `json:"email_from"`
	EmailTo      string `json:"email_to"`

	TelegramEnabled  string `json:"telegram_enabled"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`

	SlackEnabled    string `json:"slack_enabled"`
	SlackWebhookURL string `json:"slack_webhook_url"`

	DiscordEnabled    string `json:"discord_enabled"`
	DiscordWebhookURL string `json:"discord_webhook_url"`
}

var validEnabledValues = map[string]bool{"": true, "true": true, "false": true}

// SaveSettings updates the notification settings singleton. The enabled
// flags are tri-state strings; anything other than "", "true" or "false" is
// rejected.
// PUT /api/admin/notifications/settings
func (nc *NotificationsController) SaveSettings(c *gin.Context) {
	var req notificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	for _, flag := range []string{req.EmailEnabled, req.TelegramEnabled, req.SlackEnabled, req.DiscordEnabled} {
		if !validEnabledValues[flag] {
			respondBadRequest(c, "enabled flags must be \"\", \"true\" or \"false\"")
			return
		}
	}

	settings := &entities.NotificationSettings{
		ID:                entities.SingletonID,
		EmailEnabled:      req.EmailEnabled,
		EmailFrom:         req.EmailFrom,
		EmailTo:           req.EmailTo,
		TelegramEnabled:   req.TelegramEnabled,
		TelegramBotToken:  req.TelegramBotToken,
		TelegramChatID:    req.TelegramChatID,
		SlackEnabled:      req.SlackEnabled,
		SlackWebhookURL:   req.SlackWebhookURL,
		DiscordEnabled:    req.DiscordEnabled,
		DiscordWebhookURL: req.DiscordWebhookURL,
	}
	if err := nc.store.SaveSettings(settings); err != nil {
		respondInternalError(c, err, "save notification settings")
		return
	}

	nc.auditor.LogSettings("notification_settings_updated", "Notification settings updated")
	c.JSON(http.StatusOK, settings)
}
