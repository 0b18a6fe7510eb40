package recaptcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/logger"
)

func newTestClient(t *testing.T, response string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.Recaptcha{SecretKey: "secret", MinScore: 0.5}, logger.NewNop())
	client.verifyURL = server.URL
	return client
}

func TestVerifySuccess(t *testing.T) {
	client := newTestClient(t, `{"success":true,"score":0.9}`)
	assert.True(t, client.Verify(context.Background(), "token"))
}

func TestVerifyFailure(t *testing.T) {
	client := newTestClient(t, `{"success":false,"error-codes":["invalid-input-response"]}`)
	assert.False(t, client.Verify(context.Background(), "token"))
}

func TestVerifyLowScoreFails(t *testing.T) {
	client := newTestClient(t, `{"success":true,"score":0.2}`)
	assert.False(t, client.Verify(context.Background(), "token"))
}

func TestVerifyV2ResponseWithoutScorePasses(t *testing.T) {
	client := newTestClient(t, `{"success":true}`)
	assert.True(t, client.Verify(context.Background(), "token"))
}

func TestUnconfiguredSecretSkipsVerification(t *testing.T) {
	client := NewClient(config.Recaptcha{MinScore: 0.5}, logger.NewNop())
	assert.True(t, client.Verify(context.Background(), "whatever"))
}
