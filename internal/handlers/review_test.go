package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/printly/internal/middleware"
	"github.com/example/printly/internal/utils"
)

// A review write always goes through the (product_id, user_id) upsert,
// so resubmitting overwrites rating and comment instead of adding a
// second row.
func TestUpsertReviewUsesConflictUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := testConfig()
	h := NewReviewHandler(db)

	app := fiber.New()
	app.Post("/api/products/:id/reviews", middleware.AuthMiddleware(cfg), h.UpsertReview)

	productID := uuid.New()
	token, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	post := func(body string) int {
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE \(?id = \$1 AND active = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active"}).
				AddRow(productID.String(), "Calibration Cube", true))
		mock.ExpectExec(`INSERT INTO "reviews" .*ON CONFLICT \("product_id","user_id"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		req := httptest.NewRequest("POST", "/api/products/"+productID.String()+"/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusCreated, post(`{"rating":5,"comment":"prints clean"}`))
	require.Equal(t, fiber.StatusCreated, post(`{"rating":2,"comment":"warped on rerun"}`))
	require.NoError(t, mock.ExpectationsWereMet())
}
