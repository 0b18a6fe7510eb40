// Package listmonk syncs local newsletter subscribers to a Listmonk
// instance. Sync failures are logged and swallowed by callers; the local
// record stays authoritative with a null upstream id.
package listmonk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/integration/upstream"
)

const integrationName = "listmonk"

type Client struct {
	cfg  config.Listmonk
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg config.Listmonk, log *slog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log,
	}
}

// CreateSubscriber registers the subscriber upstream and returns the id
// Listmonk assigned. Membership is fixed to the configured default list.
func (c *Client) CreateSubscriber(ctx context.Context, sub *entity.Subscriber) (int, error) {
	if !c.cfg.Complete() {
		return 0, upstream.Errorf(integrationName, upstream.ConfigMissing, 0, "url or credentials not configured")
	}

	payload := subscriberRequest{
		Email:  sub.Email,
		Name:   sub.Name,
		Status: "enabled",
		Lists:  []int{c.cfg.DefaultListID},
		Attribs: map[string]string{
			"source":        sub.Source,
			"subscribed_at": sub.CreatedAt.UTC().Format(time.RFC3339),
		},
	}

	body, err := c.send(ctx, http.MethodPost, c.cfg.URL+"/api/subscribers", payload)
	if err != nil {
		return 0, err
	}

	var response subscriberResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "decode subscriber response: %v", err)
	}
	if response.Data.ID == 0 {
		return 0, upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "subscriber response missing id")
	}

	return response.Data.ID, nil
}

// UpdateSubscriber pushes the local status upstream. A subscriber that was
// never synced (nil ListmonkID) is a no-op: false is returned and no network
// call is made.
func (c *Client) UpdateSubscriber(ctx context.Context, sub *entity.Subscriber) bool {
	if sub.ListmonkID == nil {
		return false
	}
	if !c.cfg.Complete() {
		return false
	}

	status := "disabled"
	if sub.IsActive() {
		status = "enabled"
	}

	payload := subscriberRequest{
		Email:  sub.Email,
		Name:   sub.Name,
		Status: status,
		Lists:  []int{c.cfg.DefaultListID},
	}

	url := fmt.Sprintf("%s/api/subscribers/%d", c.cfg.URL, *sub.ListmonkID)
	if _, err := c.send(ctx, http.MethodPut, url, payload); err != nil {
		c.log.Error("listmonk update failed",
			"subscriber_id", *sub.ListmonkID,
			"error", err,
		)
		return false
	}

	return true
}

func (c *Client) send(ctx context.Context, method, url string, payload subscriberRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal listmonk payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.Unavailable, 0, "build request: %v", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.Unavailable, 0, "listmonk request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "read listmonk response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("listmonk request failed",
			"url", url,
			"status", resp.StatusCode,
			"response", string(body),
		)
		kind := upstream.Unavailable
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			kind = upstream.AuthFailure
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			kind = upstream.Rejected
		}
		return nil, upstream.Errorf(integrationName, kind, resp.StatusCode, "%s", string(body))
	}

	return body, nil
}
