package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// A concurrent registration can slip past the existence check; the
// unique index violation from the insert must still map to a conflict,
// not an internal error.
func TestRegisterDuplicateEmailRace(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAuthHandler(db, testConfig())

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	body := `{"first_name":"Ada","email":"ada@example.com","password":"hunter22"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	// No timeout: the bcrypt hash alone can exceed the default.
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
