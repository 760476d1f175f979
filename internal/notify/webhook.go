package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// sendSlack posts the payload to a Slack incoming webhook.
func (d *Dispatcher) sendSlack(ctx context.Context, cfg webhookConfig, p Payload) error {
	return d.postWebhook(ctx, cfg, map[string]string{"text": p.Text})
}

// sendDiscord posts the payload to a Discord incoming webhook.
func (d *Dispatcher) sendDiscord(ctx context.Context, cfg webhookConfig, p Payload) error {
	return d.postWebhook(ctx, cfg, map[string]string{"content": p.Text})
}

func (d *Dispatcher) postWebhook(ctx context.Context, cfg webhookConfig, message map[string]string) error {
	if cfg.URL == "" {
		return errWebhookNotConfigured
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
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
