// Package recaptcha verifies Google reCAPTCHA tokens. An unset secret key
// disables verification: submissions pass with a warning, which keeps local
// and staging environments working without Google credentials.
package recaptcha

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caioaot/atelier-backend/internal/config"
)

const siteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

type Client struct {
	cfg  config.Recaptcha
	http *http.Client
	log  *slog.Logger

	// Overridden in tests.
	verifyURL string
}

func NewClient(cfg config.Recaptcha, log *slog.Logger) *Client {
	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
		verifyURL: siteVerifyURL,
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify checks a client token against the siteverify endpoint. Any
// transport or decode error counts as a failed verification.
func (c *Client) Verify(ctx context.Context, token string) bool {
	if c.cfg.SecretKey == "" {
		c.log.Warn("recaptcha secret key not configured, skipping verification")
		return true
	}

	form := url.Values{
		"secret":   {c.cfg.SecretKey},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("recaptcha verification request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Error("recaptcha response decode failed", "error", err)
		return false
	}

	if !result.Success {
		c.log.Warn("recaptcha verification failed", "error_codes", result.ErrorCodes)
		return false
	}

	// v3 responses carry a score; v2 responses do not.
	if result.Score != nil && *result.Score < c.cfg.MinScore {
		c.log.Warn("recaptcha score too low", "score", *result.Score)
		return false
	}

	return true
}
