package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/services"
)

func newNotifyApp() *fiber.App {
	// No email function configured: sends are skipped, which keeps the
	// handler's validation path testable without a network dependency.
	h := NewAdminOrderHandler(nil, services.NewEmailService("", "", "admin@printly.shop"), logstore.New(nil))

	app := fiber.New()
	app.Post("/api/orders/notify", h.Notify)
	return app
}

func TestNotifyValidatesType(t *testing.T) {
	app := newNotifyApp()

	body := `{"type":"telegram","order_data":{"order_number":"PL-1"}}`
	req := httptest.NewRequest("POST", "/api/orders/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotifyRequiresOrderNumber(t *testing.T) {
	app := newNotifyApp()

	body := `{"type":"customer","order_data":{}}`
	req := httptest.NewRequest("POST", "/api/orders/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotifyAcceptsKnownTypes(t *testing.T) {
	app := newNotifyApp()

	for _, kind := range []string{"admin", "customer", "processing"} {
		body := `{"type":"` + kind + `","order_data":{"order_number":"PL-1","customer_email":"b@example.com"}}`
		req := httptest.NewRequest("POST", "/api/orders/notify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "type %s", kind)
	}
}
