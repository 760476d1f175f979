package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sendTelegram delivers the payload through the Telegram Bot API.
func (d *Dispatcher) sendTelegram(ctx context.Context, cfg telegramConfig, p Payload) error {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return errTelegramNotConfigured
	}

	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", cfg.ChatID, err)
	}

	if d.telegramSend != nil {
		return d.telegramSend(ctx, cfg.BotToken, chatID, p.Text)
	}
	return sendTelegramMessage(cfg.BotToken, chatID, p.Text)
}

func sendTelegramMessage(token string, chatID int64, text string) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
