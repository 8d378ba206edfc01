package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/models"
)

// autoCompleteDays is how long an order may sit in processing before the
// auto-transition job marks it completed.
const autoCompleteDays = 7

// logRetention is how long log rows are kept before cleanup deletes them.
const logRetention = 365 * 24 * time.Hour

// archiveBand is the age at which log rows are counted as archival
// candidates. No archive table exists; the figure is reported only.
const archiveBand = 90 * 24 * time.Hour

// MaintenanceService implements the cron-triggered bulk jobs. Jobs are
// idempotent: a rerun with nothing stale finds nothing to do. No
// cross-invocation locking; the status+age predicates make overlapping
// runs harmless beyond duplicate emails.
type MaintenanceService struct {
	db    *gorm.DB
	email *EmailService
	logs  *logstore.Store
}

// NewMaintenanceService constructs MaintenanceService.
func NewMaintenanceService(db *gorm.DB, email *EmailService, logs *logstore.Store) *MaintenanceService {
	return &MaintenanceService{db: db, email: email, logs: logs}
}

// AutoCancelResult reports one auto-cancel run.
type AutoCancelResult struct {
	Cancelled int      `json:"cancelled"`
	Orders    []string `json:"orders"`
}

// AutoCancel transitions pending orders older than the threshold to
// cancelled and attempts a customer notification for each. Individual
// email failures never block the remaining cancellations.
func (s *MaintenanceService) AutoCancel(thresholdDays int) (*AutoCancelResult, error) {
	cutoff := time.Now().AddDate(0, 0, -thresholdDays)

	var stale []models.Order
	if err := s.db.Preload("Items").
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Find(&stale).Error; err != nil {
		return nil, err
	}

	result := &AutoCancelResult{Orders: []string{}}
	for _, order := range stale {
		err := s.db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.StatusPending).
			Update("status", models.StatusCancelled).Error
		if err != nil {
			s.logs.Error(models.LogCategoryBackground, "auto-cancel update failed", logstore.Entry{
				Metadata: map[string]interface{}{"order_id": order.ID.String(), "error": err.Error()},
			})
			continue
		}

		result.Cancelled++
		result.Orders = append(result.Orders, order.OrderNumber)

		if err := s.email.NotifyAutoCancelled(OrderToEmail(order)); err != nil {
			s.logs.Warn(models.LogCategoryBackground, "auto-cancel email failed", logstore.Entry{
				Metadata: map[string]interface{}{"order_id": order.ID.String(), "error": err.Error()},
			})
		}
	}

	s.logs.Info(models.LogCategoryBackground, fmt.Sprintf("auto-cancel run cancelled %d orders", result.Cancelled), logstore.Entry{})
	return result, nil
}

// AutoCompleteResult reports one auto-transition run.
type AutoCompleteResult struct {
	Completed int64 `json:"completed"`
}

// AutoComplete bulk-transitions processing orders older than seven days
// to completed. No notification is sent for this transition.
func (s *MaintenanceService) AutoComplete() (*AutoCompleteResult, error) {
	cutoff := time.Now().AddDate(0, 0, -autoCompleteDays)

	res := s.db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.StatusProcessing, cutoff).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		return nil, res.Error
	}

	s.logs.Info(models.LogCategoryBackground, fmt.Sprintf("auto-transition completed %d orders", res.RowsAffected), logstore.Entry{})
	return &AutoCompleteResult{Completed: res.RowsAffected}, nil
}

// LowStockResult reports one low-stock scan.
type LowStockResult struct {
	Count     int               `json:"count"`
	Products  []LowStockProduct `json:"products"`
	EmailSent bool              `json:"email_sent"`
	EmailErr  string            `json:"email_error,omitempty"`
}

// LowStockScan reports active, stock-tracked products at or below the
// threshold and mails the admin a summary. An email failure is reported
// but does not fail the scan.
func (s *MaintenanceService) LowStockScan(threshold int) (*LowStockResult, error) {
	var products []models.Product
	if err := s.db.
		Where("active = ? AND stock_quantity IS NOT NULL AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity asc").
		Find(&products).Error; err != nil {
		return nil, err
	}

	result := &LowStockResult{Products: []LowStockProduct{}}
	for _, p := range products {
		stock := 0
		if p.StockQuantity != nil {
			stock = *p.StockQuantity
		}
		result.Products = append(result.Products, LowStockProduct{Name: p.Name, Stock: stock})
	}
	result.Count = len(result.Products)

	if result.Count > 0 {
		if err := s.email.NotifyLowStock(result.Products, threshold); err != nil {
			result.EmailErr = err.Error()
			s.logs.Warn(models.LogCategoryBackground, "low-stock alert email failed", logstore.Entry{
				Metadata: map[string]interface{}{"error": err.Error()},
			})
		} else {
			result.EmailSent = true
		}
	}

	return result, nil
}

// LogCleanupResult reports one log-retention run.
type LogCleanupResult struct {
	Deleted   int64 `json:"deleted"`
	ToArchive int64 `json:"to_archive"`
}

// CleanupLogs deletes log rows older than one year and counts the rows
// in the 90-day-to-1-year band as archival candidates.
func (s *MaintenanceService) CleanupLogs() (*LogCleanupResult, error) {
	now := time.Now()
	purgeBefore := now.Add(-logRetention)
	archiveBefore := now.Add(-archiveBand)

	res := s.db.Where("created_at < ?", purgeBefore).Delete(&models.LogEntry{})
	if res.Error != nil {
		return nil, res.Error
	}

	var toArchive int64
	if err := s.db.Model(&models.LogEntry{}).
		Where("created_at < ? AND created_at >= ?", archiveBefore, purgeBefore).
		Count(&toArchive).Error; err != nil {
		return nil, err
	}

	s.logs.Info(models.LogCategoryBackground,
		fmt.Sprintf("log cleanup deleted %d rows, %d candidates for archival", res.RowsAffected, toArchive),
		logstore.Entry{})

	return &LogCleanupResult{Deleted: res.RowsAffected, ToArchive: toArchive}, nil
}

// VerifyBackup performs a trivial read against the core tables and
// reports per-table connectivity. It does not inspect any backup
// artifact.
func (s *MaintenanceService) VerifyBackup() map[string]bool {
	tables := []string{"products", "orders", "logs", "categories"}

	result := make(map[string]bool, len(tables))
	for _, table := range tables {
		var id string
		err := s.db.Table(table).Select("id").Limit(1).Scan(&id).Error
		result[table] = err == nil
		if err != nil {
			s.logs.Error(models.LogCategoryBackground, "connectivity check failed for "+table, logstore.Entry{
				Metadata: map[string]interface{}{"error": err.Error()},
			})
		}
	}

	return result
}

// MaintenanceReport aggregates one combined maintenance run. A failed
// task carries its error string; the remaining tasks still run.
type MaintenanceReport struct {
	AutoCancel    *AutoCancelResult `json:"auto_cancel,omitempty"`
	AutoCancelErr string            `json:"auto_cancel_error,omitempty"`
	LowStock      *LowStockResult   `json:"low_stock,omitempty"`
	LowStockErr   string            `json:"low_stock_error,omitempty"`
	LogCleanup    *LogCleanupResult `json:"log_cleanup,omitempty"`
	LogCleanupErr string            `json:"log_cleanup_error,omitempty"`
	Connectivity  map[string]bool   `json:"connectivity"`
}

// RunAll executes auto-cancel, the low-stock scan, log cleanup, and the
// connectivity check sequentially, aggregating each sub-result.
func (s *MaintenanceService) RunAll(autoCancelDays, lowStockThreshold int) *MaintenanceReport {
	report := &MaintenanceReport{}

	if res, err := s.AutoCancel(autoCancelDays); err != nil {
		report.AutoCancelErr = err.Error()
	} else {
		report.AutoCancel = res
	}

	if res, err := s.LowStockScan(lowStockThreshold); err != nil {
		report.LowStockErr = err.Error()
	} else {
		report.LowStock = res
	}

	if res, err := s.CleanupLogs(); err != nil {
		report.LogCleanupErr = err.Error()
	} else {
		report.LogCleanup = res
	}

	report.Connectivity = s.VerifyBackup()

	return report
}

// OrderToEmail converts an order row into the snapshot the mail
// templates consume.
func OrderToEmail(order models.Order) OrderEmail {
	email := OrderEmail{
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Street:        order.ShippingStreet,
		City:          order.ShippingCity,
		PostalCode:    order.ShippingPostalCode,
		Country:       order.ShippingCountry,
		Total:         order.Total,
		ShippingCost:  order.ShippingCost,
		Discount:      order.DiscountAmount,
		Notes:         order.Notes,
	}

	for _, item := range order.Items {
		email.Items = append(email.Items, OrderEmailItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return email
}
