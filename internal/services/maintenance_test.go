package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return db, mock
}

// A rerun after everything stale was already cancelled scans, finds
// nothing, and issues no updates.
func TestAutoCancelRerunFindsNothing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMaintenanceService(db, NewEmailService("", "", "admin@printly.shop"), logstore.New(nil))

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE \(?status = \$1 AND created_at < \$2`).
		WithArgs(models.StatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := svc.AutoCancel(30)
	require.NoError(t, err)
	require.Zero(t, result.Cancelled)
	require.Empty(t, result.Orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderToEmail(t *testing.T) {
	productID := uuid.New()
	order := models.Order{
		OrderNumber:        "PL-42",
		CustomerName:       "Ada",
		CustomerEmail:      "ada@example.com",
		ShippingStreet:     "1 Extruder Rd",
		ShippingCity:       "Ghent",
		ShippingPostalCode: "9000",
		ShippingCountry:    "BE",
		Total:              31.5,
		ShippingCost:       4.5,
		DiscountAmount:     3,
		Notes:              "leave at door",
		Items: []models.OrderItem{
			{ProductID: &productID, ProductName: "Calibration Cube", UnitPrice: 15, Quantity: 2},
		},
	}

	email := OrderToEmail(order)

	require.Equal(t, "PL-42", email.OrderNumber)
	require.Equal(t, "ada@example.com", email.CustomerEmail)
	require.Equal(t, "1 Extruder Rd", email.Street)
	require.Equal(t, 31.5, email.Total)
	require.Equal(t, 4.5, email.ShippingCost)
	require.Equal(t, 3.0, email.Discount)
	require.Len(t, email.Items, 1)
	require.Equal(t, "Calibration Cube", email.Items[0].Name)
	require.Equal(t, 2, email.Items[0].Quantity)
	require.Equal(t, 15.0, email.Items[0].UnitPrice)
}
