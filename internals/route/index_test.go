package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fbcontroller "dansebakken_backend/internals/features/feedback/controller"
	vippscontroller "dansebakken_backend/internals/features/payments/vipps/controller"
	regcontroller "dansebakken_backend/internals/features/registrations/controller"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	SetupRoutes(app, Deps{
		Webhook:  regcontroller.NewWebhookController(nil, nil, nil),
		Feedback: fbcontroller.NewFeedbackController(nil, nil),
		Vipps:    vippscontroller.NewVippsController(nil),
	})
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
	assert.Contains(t, body, "sheetsConfigured")
	assert.Contains(t, body, "vippsConfigured")
}

func TestSubmissionRoutesMountedBareAndUnderAPI(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/webhook", "/api/webhook", "/feedback", "/api/feedback"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		// empty payloads must hit the handlers' validation, not a 404
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestVippsRoutesMounted(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/vipps-test", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/vipps-callback", strings.NewReader(`{"orderId":"SUR-1","transactionInfo":{"status":"SALE","amount":34900}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/vipps/payment-status/SUR-1", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	// nil client: route exists but Vipps is unconfigured
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
