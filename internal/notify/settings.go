// Package notify fans a single event out to the configured notification
// channels: email via Resend, Telegram, Slack, and Discord. Channels are
// attempted independently; one channel failing never affects another and the
// dispatch as a whole never fails.
package notify

import (
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/entities"
)

// emailConfig is the fully resolved email channel configuration.
type emailConfig struct {
	Enabled bool
	From    string
	To      string
	APIKey  string
}

type telegramConfig struct {
	Enabled  bool
	BotToken string
	ChatID   string
}

type webhookConfig struct {
	Enabled bool
	URL     string
}

type channelConfigs struct {
	Email    emailConfig
	Telegram telegramConfig
	Slack    webhookConfig
	Discord  webhookConfig
}

// resolveChannels merges the settings row with the environment fallbacks.
// settings may be nil (the row is only created once the admin saves the
// form). Enabled flags are tri-state: email counts as enabled unless the
// flag says "false", every other channel only when it says "true".
func resolveChannels(settings *entities.NotificationSettings, env config.Notify) channelConfigs {
	s := settings
	if s == nil {
		s = &entities.NotificationSettings{}
	}

	return channelConfigs{
		Email: emailConfig{
			Enabled: s.EmailEnabled != "false",
			From:    firstNonEmpty(s.EmailFrom, env.EmailFrom),
			To:      firstNonEmpty(s.EmailTo, env.EmailTo),
			APIKey:  env.ResendAPIKey,
		},
		Telegram: telegramConfig{
			Enabled:  s.TelegramEnabled == "true",
			BotToken: firstNonEmpty(s.TelegramBotToken, env.TelegramToken),
			ChatID:   firstNonEmpty(s.TelegramChatID, env.TelegramChatID),
		},
		Slack: webhookConfig{
			Enabled: s.SlackEnabled == "true",
			URL:     firstNonEmpty(s.SlackWebhookURL, env.SlackWebhook),
		},
		Discord: webhookConfig{
			Enabled: s.DiscordEnabled == "true",
			URL:     firstNonEmpty(s.DiscordWebhookURL, env.DiscordWebhook),
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
