// Package turnstile verifies Cloudflare Turnstile tokens submitted with the
// public contact form.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	siteverifyURL  = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	defaultTimeout = 10 * time.Second
)

// ErrVerificationFailed means Cloudflare rejected the token.
var ErrVerificationFailed = errors.New("turnstile verification failed")

type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		apiURL:    siteverifyURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a client token against the siteverify endpoint. remoteIP is
// optional and forwarded when present.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var verify verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verify); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !verify.Success {
		if len(verify.ErrorCodes) > 0 {
			return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(verify.ErrorCodes, ", "))
		}
		return ErrVerificationFailed
	}
	return nil
}
