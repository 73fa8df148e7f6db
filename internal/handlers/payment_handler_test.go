package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaraspa/spa-scheduler/internal/payments"
)

// Without MP_ACCESS_TOKEN the gateway is nil but the webhook route is
// still registered. Notifications must be acknowledged, not crash.
func TestWebhook_GatewayDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewPaymentHandler(nil, nil, nil, nil, nil)

	r := gin.New()
	r.POST("/api/payments/webhook", h.Webhook)

	body := `{"type":"payment","data":{"id":"12345"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

// Non-payment events are filtered before any gateway lookup.
func TestWebhook_IgnoresNonPaymentEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gateway, err := payments.NewGateway("TEST-1234", "", "")
	require.NoError(t, err)
	require.True(t, gateway.Enabled())

	h := NewPaymentHandler(nil, gateway, nil, nil, nil)

	r := gin.New()
	r.POST("/api/payments/webhook", h.Webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook",
		strings.NewReader(`{"type":"merchant_order","data":{"id":"1"}}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}
