package msgraph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/infra/integration/upstream"
	"github.com/caioaot/atelier-backend/internal/infra/tokencache"
	"github.com/caioaot/atelier-backend/internal/logger"
)

type fakeGraph struct {
	login *httptest.Server
	graph *httptest.Server

	tokenCalls    atomic.Int32
	graphCalls    atomic.Int32
	expiresIn     int
	lastGraphBody []byte
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()

	f := &fakeGraph{expiresIn: 3600}

	f.login = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, graphScope, r.Form.Get("scope"))
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"expires_in":   f.expiresIn,
		})
	}))
	t.Cleanup(f.login.Close)

	f.graph = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.graphCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.lastGraphBody = body
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"appt-123"}`))
	}))
	t.Cleanup(f.graph.Close)

	return f
}

func newTestClient(f *fakeGraph, cache tokencache.Cache) *Client {
	c := NewClient(config.Microsoft{
		ClientID:     "client",
		ClientSecret: "secret",
		TenantID:     "tenant",
		BusinessID:   "biz",
	}, cache, logger.NewNop())
	c.loginBaseURL = f.login.URL
	c.graphBaseURL = f.graph.URL
	return c
}

func TestTokenIsAcquiredOnceWhileCached(t *testing.T) {
	f := newFakeGraph(t)
	client := newTestClient(f, tokencache.NewMemory())

	_, err := client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")
	require.NoError(t, err)
	_, err = client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, int32(2), f.graphCalls.Load())
}

func TestShortLivedTokenForcesReacquisition(t *testing.T) {
	// expires_in below the 300s safety margin caches with zero ttl, so the
	// next call hits the token endpoint again.
	f := newFakeGraph(t)
	f.expiresIn = 250
	client := newTestClient(f, tokencache.NewMemory())

	_, err := client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")
	require.NoError(t, err)
	_, err = client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.tokenCalls.Load())
}

func TestMissingConfigFailsBeforeAnyNetworkCall(t *testing.T) {
	f := newFakeGraph(t)
	client := NewClient(config.Microsoft{}, tokencache.NewMemory(), logger.NewNop())
	client.loginBaseURL = f.login.URL
	client.graphBaseURL = f.graph.URL

	_, err := client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")

	kind, ok := upstream.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, upstream.ConfigMissing, kind)
	assert.Equal(t, int32(0), f.tokenCalls.Load())
	assert.Equal(t, int32(0), f.graphCalls.Load())
}

func TestAvailabilityPayloadShape(t *testing.T) {
	f := newFakeGraph(t)
	client := newTestClient(f, tokencache.NewMemory())

	_, err := client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "svc-1")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(f.lastGraphBody, &payload))

	start := payload["startTime"].(map[string]any)
	end := payload["endTime"].(map[string]any)
	assert.Equal(t, "2026-09-01T00:00:00.000Z", start["dateTime"])
	assert.Equal(t, "2026-09-30T23:59:59.999Z", end["dateTime"])
	assert.Equal(t, "UTC", start["timeZone"])
	assert.Equal(t, []any{"svc-1"}, payload["serviceIds"])
	assert.Equal(t, []any{}, payload["staffIds"])
}

func TestAvailabilityOmitsServiceIDsWithoutFilter(t *testing.T) {
	f := newFakeGraph(t)
	client := newTestClient(f, tokencache.NewMemory())

	_, err := client.GetAvailability(context.Background(), "2026-09-01", "2026-09-30", "")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(f.lastGraphBody, &payload))
	_, present := payload["serviceIds"]
	assert.False(t, present)
}

func TestAppointmentPayloadAlwaysCarriesOptionalCustomerKeys(t *testing.T) {
	f := newFakeGraph(t)
	client := newTestClient(f, tokencache.NewMemory())

	appointment, err := client.CreateAppointment(context.Background(), AppointmentInput{
		ServiceID:     "svc-1",
		StartTime:     "2026-09-01T10:00:00Z",
		EndTime:       "2026-09-01T11:00:00Z",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		// Phone and Notes deliberately omitted.
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-123", appointment.ID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(f.lastGraphBody, &payload))

	customers := payload["customers"].([]any)
	require.Len(t, customers, 1)
	customer := customers[0].(map[string]any)
	assert.Equal(t, "", customer["phone"])
	assert.Equal(t, "", customer["notes"])
}

func TestUpstream4xxMapsToRejected(t *testing.T) {
	f := newFakeGraph(t)
	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"SlotAlreadyBooked"}}`))
	}))
	t.Cleanup(rejecting.Close)

	client := newTestClient(f, tokencache.NewMemory())
	client.graphBaseURL = rejecting.URL

	_, err := client.CreateAppointment(context.Background(), AppointmentInput{ServiceID: "svc-1"})

	kind, ok := upstream.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, upstream.Rejected, kind)
}
