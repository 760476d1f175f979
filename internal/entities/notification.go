package entities

import "time"

// Notification channel identifiers. One log row is written per channel per
// dispatched event.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelTelegram NotificationChannel = "telegram"
	ChannelSlack    NotificationChannel = "slack"
	ChannelDiscord  NotificationChannel = "discord"
)

// AllNotificationChannels lists every channel a dispatch attempts.
var AllNotificationChannels = []NotificationChannel{
	ChannelEmail,
	ChannelTelegram,
	ChannelSlack,
	ChannelDiscord,
}

type NotificationStatus string

const (
	NotificationStatusSent  NotificationStatus = "sent"
	NotificationStatusError NotificationStatus = "error"
)

// NotificationSettings is the singleton row of per-channel configuration,
// mutated only by the admin settings form and read fresh before every
// dispatch. Enabled flags are tri-state strings ("", "true", "false") so the
// dispatcher can distinguish "never configured" from "explicitly disabled":
// email defaults to enabled when unset, the other channels default to
// disabled.
type NotificationSettings struct {
	ID string `gorm:"primaryKey;size:16" json:"id"` // Always "singleton"

	EmailEnabled string `gorm:"size:8" json:"email_enabled"`
	EmailFrom    string `gorm:"size:256" json:"email_from,omitempty"`
	EmailTo      string `gorm:"size:256" json:"email_to,omitempty"`

	TelegramEnabled  string `gorm:"size:8" json:"telegram_enabled"`
	TelegramBotToken string `gorm:"size:256" json:"telegram_bot_token,omitempty"`
	TelegramChatID   string `gorm:"size:64" json:"telegram_chat_id,omitempty"`

	SlackEnabled    string `gorm:"size:8" json:"slack_enabled"`
	SlackWebhookURL string `gorm:"size:512" json:"slack_webhook_url,omitempty"`

	DiscordEnabled    string `gorm:"size:8" json:"discord_enabled"`
	DiscordWebhookURL string `gorm:"size:512" json:"discord_webhook_url,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationLog is an append-only record of one channel attempt.
// Rows are never updated or deleted by request handlers; only the retention
// task prunes old entries.
type NotificationLog struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	EventID   string              `gorm:"index;size:36" json:"event_id"` // Correlates the 4 rows of one dispatch
	Event     string              `gorm:"size:64" json:"event"`          // e.g. "contact_request", "test"
	Channel   NotificationChannel `gorm:"index;size:16" json:"channel"`
	Status    NotificationStatus  `gorm:"index;size:8" json:"status"`
	Detail    string              `gorm:"size:2048" json:"detail,omitempty"`  // Remote response / config error, verbatim
	Payload   string              `gorm:"type:text" json:"payload,omitempty"` // Opaque JSON snapshot of the event
	CreatedAt time.Time           `gorm:"index" json:"created_at"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}

func (NotificationLog) TableName() string {
	return "notifications_log"
}
