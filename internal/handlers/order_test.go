package handlers

import (
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/services"
)

func TestGenerateOrderNumber(t *testing.T) {
	format := regexp.MustCompile(`^PL-\d{1,9}-\d{4}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		number := generateOrderNumber()
		require.Regexp(t, format, number)
		seen[number] = struct{}{}
	}
	require.Len(t, seen, 100)
}

// A colliding order number surfaces as a duplicate-key error on insert;
// the handler regenerates and retries instead of returning a 500.
func TestCreateOrderRetriesNumberCollision(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewOrderHandler(db, testConfig(), services.NewEmailService("", "", "admin@printly.shop"), logstore.New(nil))

	app := fiber.New()
	app.Post("/api/orders", h.CreateOrder)

	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := `{
		"customer_name": "Ada",
		"customer_email": "ada@example.com",
		"items": [{"product_name": "Calibration Cube", "unit_price": 15, "quantity": 2}]
	}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
