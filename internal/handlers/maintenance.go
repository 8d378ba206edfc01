package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/printly/internal/config"
	"github.com/example/printly/internal/services"
)

// MaintenanceHandler exposes the cron-triggered jobs. POST runs a job;
// GET returns usage and configuration info only, so schedulers can be
// checked without side effects.
type MaintenanceHandler struct {
	svc *services.MaintenanceService
	cfg *config.Config
}

// NewMaintenanceHandler constructs MaintenanceHandler.
func NewMaintenanceHandler(svc *services.MaintenanceService, cfg *config.Config) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc, cfg: cfg}
}

// AutoCancel cancels pending orders older than the configured threshold.
func (h *MaintenanceHandler) AutoCancel(c *fiber.Ctx) error {
	result, err := h.svc.AutoCancel(h.cfg.AutoCancelDays)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// AutoCancelInfo describes the auto-cancel job.
func (h *MaintenanceHandler) AutoCancelInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "auto-cancel",
		"description": "cancels pending orders older than the threshold and emails each customer",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
		"config": fiber.Map{
			"auto_cancel_days": h.cfg.AutoCancelDays,
		},
	})
}

// AutoTransition completes processing orders older than seven days.
func (h *MaintenanceHandler) AutoTransition(c *fiber.Ctx) error {
	result, err := h.svc.AutoComplete()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// AutoTransitionInfo describes the auto-transition job.
func (h *MaintenanceHandler) AutoTransitionInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "auto-transition",
		"description": "moves orders stuck in processing for 7 days to completed, no notification",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
	})
}

// LowStockAlert scans for low-stock products and mails the admin.
func (h *MaintenanceHandler) LowStockAlert(c *fiber.Ctx) error {
	result, err := h.svc.LowStockScan(h.cfg.LowStockThreshold)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// LowStockAlertInfo describes the low-stock job.
func (h *MaintenanceHandler) LowStockAlertInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "low-stock-alert",
		"description": "emails the admin a summary of active products at or below the stock threshold",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
		"config": fiber.Map{
			"low_stock_threshold": h.cfg.LowStockThreshold,
		},
	})
}

// CleanupLogs purges log rows past retention.
func (h *MaintenanceHandler) CleanupLogs(c *fiber.Ctx) error {
	result, err := h.svc.CleanupLogs()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// CleanupLogsInfo describes the log cleanup job.
func (h *MaintenanceHandler) CleanupLogsInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "cleanup-logs",
		"description": "deletes log rows older than 1 year and counts the 90-day-to-1-year band",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
	})
}

// VerifyBackup reports per-table connectivity. Despite the route name it
// checks reachability only, not backup artifacts.
func (h *MaintenanceHandler) VerifyBackup(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"connectivity": h.svc.VerifyBackup(),
	}})
}

// VerifyBackupInfo describes the connectivity check.
func (h *MaintenanceHandler) VerifyBackupInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "verify-backup",
		"description": "performs a trivial read against core tables and reports per-table connectivity",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
	})
}

// Maintenance runs every job sequentially and aggregates the results.
// One task failing never aborts the rest.
func (h *MaintenanceHandler) Maintenance(c *fiber.Ctx) error {
	report := h.svc.RunAll(h.cfg.AutoCancelDays, h.cfg.LowStockThreshold)
	return c.JSON(fiber.Map{"success": true, "data": report})
}

// MaintenanceInfo describes the combined job.
func (h *MaintenanceHandler) MaintenanceInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job":         "maintenance",
		"description": "runs auto-cancel, low-stock alert, log cleanup, and the connectivity check in one invocation",
		"method":      "POST with Authorization: Bearer <CRON_SECRET>",
		"config": fiber.Map{
			"auto_cancel_days":    h.cfg.AutoCancelDays,
			"low_stock_threshold": h.cfg.LowStockThreshold,
		},
	})
}
