package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newCronApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/job", CronAuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestCronAuthMiddleware(t *testing.T) {
	app := newCronApp("cron-secret")

	req := httptest.NewRequest("POST", "/job", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCronAuthMiddlewareRejectsBadSecret(t *testing.T) {
	app := newCronApp("cron-secret")

	for _, header := range []string{
		"",
		"Bearer wrong",
		"Basic cron-secret",
		"cron-secret",
	} {
		req := httptest.NewRequest("POST", "/job", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestCronAuthMiddlewareRejectsWhenUnconfigured(t *testing.T) {
	app := newCronApp("")

	req := httptest.NewRequest("POST", "/job", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
