package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/printly/internal/config"
	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/middleware"
	"github.com/example/printly/internal/models"
	"github.com/example/printly/internal/services"
	"github.com/example/printly/internal/utils"
)

// OrderHandler manages customer-facing order endpoints.
type OrderHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	email *services.EmailService
	logs  *logstore.Store
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, cfg *config.Config, email *services.EmailService, logs *logstore.Store) *OrderHandler {
	return &OrderHandler{db: db, cfg: cfg, email: email, logs: logs}
}

type orderItemRequest struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	ShippingStreet     string `json:"shipping_street"`
	ShippingCity       string `json:"shipping_city"`
	ShippingPostalCode string `json:"shipping_postal_code"`
	ShippingCountry    string `json:"shipping_country"`

	Items          []orderItemRequest `json:"items"`
	ShippingCost   float64            `json:"shipping_cost"`
	DiscountAmount float64            `json:"discount_amount"`
	CouponCode     string             `json:"coupon_code"`
	Notes          string             `json:"notes"`
}

// CreateOrder places an order. Authentication is optional: guest orders
// carry contact fields only and have no owner. Item names and unit
// prices are snapshotted into the order, and the total is computed
// server-side.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer name and email are required")
	}

	order := models.Order{
		OrderNumber:        generateOrderNumber(),
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		ShippingStreet:     req.ShippingStreet,
		ShippingCity:       req.ShippingCity,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingCountry:    req.ShippingCountry,
		ShippingCost:       req.ShippingCost,
		DiscountAmount:     req.DiscountAmount,
		CouponCode:         strings.ToUpper(strings.TrimSpace(req.CouponCode)),
		Notes:              req.Notes,
		Status:             models.StatusPending,
	}

	if userID, ok := middleware.GetCurrentUserID(c); ok {
		order.UserID = &userID
	}

	var subtotal float64
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 || strings.TrimSpace(item.ProductName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order item")
		}

		row := models.OrderItem{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
		if item.ProductID != "" {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				row.ProductID = &id
			}
		}

		subtotal += item.UnitPrice * float64(item.Quantity)
		order.Items = append(order.Items, row)
	}

	order.Total = subtotal + order.ShippingCost - order.DiscountAmount
	if order.Total < 0 {
		order.Total = 0
	}

	if err := h.db.Create(&order).Error; err != nil {
		// Order numbers are time-derived; a collision surfaces as a
		// unique-index violation. Regenerate once instead of failing.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		order.OrderNumber = generateOrderNumber()
		if err := h.db.Create(&order).Error; err != nil {
			return err
		}
	}

	// Confirmation mails are best-effort and never delay the response.
	go func(order models.Order) {
		snapshot := services.OrderToEmail(order)
		if err := h.email.NotifyAdminNewOrder(snapshot); err != nil {
			h.logs.Warn(models.LogCategoryAPI, "admin new-order email failed", logstore.Entry{
				Metadata: map[string]interface{}{"order_id": order.ID.String(), "error": err.Error()},
			})
		}
		if err := h.email.NotifyCustomerConfirmation(snapshot); err != nil {
			h.logs.Warn(models.LogCategoryAPI, "customer confirmation email failed", logstore.Entry{
				Metadata: map[string]interface{}{"order_id": order.ID.String(), "error": err.Error()},
			})
		}
	}(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total":        order.Total,
		},
	})
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
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

// GetOrder returns a single order for the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type cancelOrderRequest struct {
	OrderID string `json:"order_id"`
}

// CancelOrder cancels an order from pending or paid. The owning user or
// an admin may cancel; guest orders have no owner to compare against.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	var req cancelOrderRequest
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

	if order.UserID != nil {
		userID, ok := middleware.GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		if *order.UserID != userID && !h.isAdmin(userID) {
			return fiber.NewError(fiber.StatusForbidden, "not your order")
		}
	}

	if err := services.CanCancel(order.Status); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := h.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", order.ID, []string{models.StatusPending, models.StatusPaid}).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "order status changed, please retry")
	}

	h.logs.Info(models.LogCategoryAPI, "order cancelled", logstore.Entry{
		Metadata: map[string]interface{}{"order_id": order.ID.String()},
		UserID:   order.UserID,
		IP:       c.IP(),
	})

	return c.JSON(fiber.Map{"success": true, "message": "order cancelled"})
}

func (h *OrderHandler) isAdmin(userID uuid.UUID) bool {
	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return h.cfg.IsAdminEmail(user.Email)
}

func generateOrderNumber() string {
	return fmt.Sprintf("PL-%d-%04d", time.Now().UnixNano()%1000000000, rand.Intn(10000))
}
