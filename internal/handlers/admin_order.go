package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/middleware"
	"github.com/example/printly/internal/models"
	"github.com/example/printly/internal/services"
	"github.com/example/printly/internal/utils"
)

// AdminOrderHandler manages the admin-only order endpoints.
type AdminOrderHandler struct {
	db    *gorm.DB
	email *services.EmailService
	logs  *logstore.Store
}

// NewAdminOrderHandler constructs AdminOrderHandler.
func NewAdminOrderHandler(db *gorm.DB, email *services.EmailService, logs *logstore.Store) *AdminOrderHandler {
	return &AdminOrderHandler{db: db, email: email, logs: logs}
}

// ListAllOrders returns all orders with pagination, filtering, and user info.
func (h *AdminOrderHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if c.Query("archived") == "true" {
		query = query.Where("archived = ?", true)
	} else {
		query = query.Where("archived = ?", false)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			q, q, q,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateStatusRequest struct {
	OrderID       string `json:"order_id"`
	NewStatus     string `json:"new_status"`
	CurrentStatus string `json:"current_status"`
}

func (r updateStatusRequest) validate() error {
	var problems []string
	if _, err := uuid.Parse(r.OrderID); err != nil {
		problems = append(problems, "order_id: must be a valid UUID")
	}
	if !services.IsValidStatus(r.NewStatus) {
		problems = append(problems, "new_status: unknown status")
	}
	if !services.IsValidStatus(r.CurrentStatus) {
		problems = append(problems, "current_status: unknown status")
	}
	if len(problems) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(problems, "; "))
	}
	return nil
}

// UpdateStatus applies a status transition. The caller supplies the
// status it last saw; the update is conditional on the stored row still
// holding that status, so a stale admin UI gets a 409 instead of
// clobbering a concurrent change.
func (h *AdminOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	if !services.CanTransition(req.CurrentStatus, req.NewStatus) {
		return fiber.NewError(fiber.StatusBadRequest,
			"cannot transition order from "+req.CurrentStatus+" to "+req.NewStatus)
	}

	orderID, _ := uuid.Parse(req.OrderID)

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	res := h.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, req.CurrentStatus).
		Update("status", req.NewStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "order status has changed, reload and retry")
	}

	admin, _ := middleware.GetAdminUser(c)
	adminID := admin.ID
	h.logs.Info(models.LogCategoryAdmin, "order status updated", logstore.Entry{
		Metadata: map[string]interface{}{
			"order_id": orderID.String(),
			"from":     req.CurrentStatus,
			"to":       req.NewStatus,
		},
		UserID: &adminID,
		IP:     c.IP(),
	})

	// The paid→processing transition tells the customer their prints
	// went into production. Best-effort, never blocks the response.
	if req.CurrentStatus == models.StatusPaid && req.NewStatus == models.StatusProcessing {
		go func(order models.Order) {
			if err := h.email.NotifyProcessingStarted(services.OrderToEmail(order)); err != nil {
				h.logs.Warn(models.LogCategoryAdmin, "processing-started email failed", logstore.Entry{
					Metadata: map[string]interface{}{"order_id": order.ID.String(), "error": err.Error()},
				})
			}
		}(order)
	}

	return c.JSON(fiber.Map{"success": true, "message": "status updated", "data": fiber.Map{
		"order_id": orderID,
		"status":   req.NewStatus,
	}})
}

type deleteOrderRequest struct {
	OrderID string `json:"order_id"`
}

// DeleteOrder hard-deletes an order and its items.
func (h *AdminOrderHandler) DeleteOrder(c *fiber.Ctx) error {
	var req deleteOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := h.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := h.db.Delete(&order).Error; err != nil {
		return err
	}

	admin, _ := middleware.GetAdminUser(c)
	adminID := admin.ID
	h.logs.Warn(models.LogCategoryAdmin, "order deleted", logstore.Entry{
		Metadata: map[string]interface{}{"order_id": orderID.String(), "order_number": order.OrderNumber},
		UserID:   &adminID,
		IP:       c.IP(),
	})

	return c.JSON(fiber.Map{"success": true, "message": "order deleted"})
}

type archiveOrderRequest struct {
	OrderID  string `json:"order_id"`
	Archived bool   `json:"archived"`
}

// ArchiveOrder toggles the archived flag on an order.
func (h *AdminOrderHandler) ArchiveOrder(c *fiber.Ctx) error {
	var req archiveOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_id")
	}

	res := h.db.Model(&models.Order{}).Where("id = ?", orderID).Update("archived", req.Archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "order updated"})
}

type notifyRequest struct {
	Type      string              `json:"type"`
	OrderData services.OrderEmail `json:"order_data"`
}

// Notify re-sends an order notification mail of the given kind. The
// external send stays fire-and-forget; a failure is reported in the
// response but already logged.
func (h *AdminOrderHandler) Notify(c *fiber.Ctx) error {
	var req notifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var problems []string
	if req.Type != "admin" && req.Type != "customer" && req.Type != "processing" {
		problems = append(problems, "type: must be admin, customer, or processing")
	}
	if req.OrderData.OrderNumber == "" {
		problems = append(problems, "order_data.order_number: required")
	}
	if len(problems) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(problems, "; "))
	}

	var err error
	switch req.Type {
	case "admin":
		err = h.email.NotifyAdminNewOrder(req.OrderData)
	case "customer":
		err = h.email.NotifyCustomerConfirmation(req.OrderData)
	case "processing":
		err = h.email.NotifyProcessingStarted(req.OrderData)
	}

	if err != nil {
		h.logs.Warn(models.LogCategoryAPI, "notification resend failed", logstore.Entry{
			Metadata: map[string]interface{}{"type": req.Type, "order_number": req.OrderData.OrderNumber, "error": err.Error()},
			IP:       c.IP(),
		})
		return c.JSON(fiber.Map{"success": false, "message": "notification could not be sent"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "notification sent"})
}
