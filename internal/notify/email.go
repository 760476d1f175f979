package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const resendAPIURL = "https://api.resend.com/emails"

var (
	errEmailNotConfigured    = errors.New("email channel missing from/to address or API key")
	errTelegramNotConfigured = errors.New("telegram channel missing bot token or chat id")
	errWebhookNotConfigured  = errors.New("webhook URL not configured")
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// sendEmail delivers the payload through the Resend API.
func (d *Dispatcher) sendEmail(ctx context.Context, cfg emailConfig, p Payload) error {
	if cfg.From == "" || cfg.To == "" || cfg.APIKey == "" {
		return errEmailNotConfigured
	}

	body, err := json.Marshal(resendRequest{
		From:    cfg.From,
		To:      []string{cfg.To},
		Subject: p.Subject,
		HTML:    p.HTML,
		Text:    p.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.emailAPIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
