// Package msgraph proxies Microsoft Bookings through the Graph API using the
// OAuth2 client-credentials grant. Tokens live in an injected cache; each
// call is a single synchronous round trip with no retry.
package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/infra/integration/upstream"
	"github.com/caioaot/atelier-backend/internal/infra/tokencache"
)

const (
	integrationName = "msgraph"
	cacheKey        = "microsoft_bookings_token"
	graphScope      = "https://graph.microsoft.com/.default"

	// Tokens are cached for five minutes less than the upstream-reported
	// expiry so a cached token is never served past its true validity.
	expirySafetyMargin = 300
)

type Client struct {
	cfg    config.Microsoft
	tokens tokencache.Cache
	http   *http.Client
	log    *slog.Logger

	// Overridden in tests.
	loginBaseURL string
	graphBaseURL string
}

func NewClient(cfg config.Microsoft, tokens tokencache.Cache, log *slog.Logger) *Client {
	return &Client{
		cfg:          cfg,
		tokens:       tokens,
		http:         &http.Client{Timeout: 15 * time.Second},
		log:          log,
		loginBaseURL: "https://login.microsoftonline.com",
		graphBaseURL: "https://graph.microsoft.com/v1.0",
	}
}

// GetAvailability queries staff availability between two dates (YYYY-MM-DD,
// normalized to a full UTC day). The upstream payload is returned unmodified;
// this service is a proxy, not a transformer.
func (c *Client) GetAvailability(ctx context.Context, startDate, endDate, serviceID string) (json.RawMessage, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if c.cfg.BusinessID == "" {
		return nil, upstream.Errorf(integrationName, upstream.ConfigMissing, 0, "bookings business id not configured")
	}

	payload := availabilityRequest{
		StaffIDs:  []string{},
		StartTime: dateTimeZone{DateTime: startDate + "T00:00:00.000Z", TimeZone: "UTC"},
		EndTime:   dateTimeZone{DateTime: endDate + "T23:59:59.999Z", TimeZone: "UTC"},
	}
	if serviceID != "" {
		payload.ServiceIDs = []string{serviceID}
	}

	endpoint := fmt.Sprintf("%s/solutions/bookingBusinesses/%s/getStaffAvailability", c.graphBaseURL, c.cfg.BusinessID)
	body, err := c.post(ctx, endpoint, token, payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// CreateAppointment books an appointment. Optional customer fields are sent
// as empty strings, never omitted; the Bookings schema requires the keys.
func (c *Client) CreateAppointment(ctx context.Context, input AppointmentInput) (*Appointment, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if c.cfg.BusinessID == "" {
		return nil, upstream.Errorf(integrationName, upstream.ConfigMissing, 0, "bookings business id not configured")
	}

	payload := appointmentRequest{
		ServiceID: input.ServiceID,
		StartTime: dateTimeZone{DateTime: input.StartTime, TimeZone: "UTC"},
		EndTime:   dateTimeZone{DateTime: input.EndTime, TimeZone: "UTC"},
		Customers: []appointmentCustomer{
			{
				Name:         input.CustomerName,
				EmailAddress: input.CustomerEmail,
				Phone:        input.CustomerPhone,
				Notes:        input.Notes,
			},
		},
	}

	endpoint := fmt.Sprintf("%s/solutions/bookingBusinesses/%s/appointments", c.graphBaseURL, c.cfg.BusinessID)
	body, err := c.post(ctx, endpoint, token, payload)
	if err != nil {
		return nil, err
	}

	var appointment Appointment
	if err := json.Unmarshal(body, &appointment); err != nil {
		return nil, upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "decode appointment: %v", err)
	}
	return &appointment, nil
}

// token returns a cached bearer token or acquires a fresh one. Concurrent
// cache misses each acquire independently; the token endpoint is idempotent
// and cheap at this volume, so no single-flight.
func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(cacheKey); ok {
		return token, nil
	}

	if !c.cfg.Complete() {
		return "", upstream.Errorf(integrationName, upstream.ConfigMissing, 0, "client id, secret or tenant not configured")
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {graphScope},
		"grant_type":    {"client_credentials"},
	}

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginBaseURL, c.cfg.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", upstream.Errorf(integrationName, upstream.Unavailable, 0, "build token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", upstream.Errorf(integrationName, upstream.Unavailable, 0, "token request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("microsoft token request failed",
			"status", resp.StatusCode,
			"response", string(body),
		)
		return "", upstream.Errorf(integrationName, upstream.AuthFailure, resp.StatusCode, "%s", string(body))
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "decode token response: %v", err)
	}
	if data.AccessToken == "" {
		return "", upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "token response missing access_token")
	}

	ttl := time.Duration(data.ExpiresIn-expirySafetyMargin) * time.Second
	if ttl < 0 {
		ttl = 0
	}
	c.tokens.Put(cacheKey, data.AccessToken, ttl)

	return data.AccessToken, nil
}

func (c *Client) post(ctx context.Context, endpoint, token string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal graph payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.Unavailable, 0, "build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.Unavailable, 0, "graph request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.Errorf(integrationName, upstream.MalformedResponse, 0, "read graph response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("graph request failed",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"response", string(body),
		)
		kind := upstream.Unavailable
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			kind = upstream.Rejected
		}
		return nil, upstream.Errorf(integrationName, kind, resp.StatusCode, "%s", string(body))
	}

	return body, nil
}
