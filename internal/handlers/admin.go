package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/printly/internal/middleware"
	"github.com/example/printly/internal/models"
)

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AdminHandler serves the admin check and analytics endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Check confirms the caller passed the admin gate and returns their
// identity.
func (h *AdminHandler) Check(c *fiber.Ctx) error {
	user, ok := middleware.GetAdminUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "not an admin")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"is_admin": true,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Analytics returns lifetime sales, monthly sales breakdown, per-product
// performance, and order counts.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	// Orders by status
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Lifetime revenue over non-cancelled orders
	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.StatusCancelled, models.StatusRefunded}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	// Monthly sales for the last 12 months
	type monthlySales struct {
		Month   string  `json:"month"`
		Revenue float64 `json:"revenue"`
		Orders  int64   `json:"orders"`
	}
	var monthly []monthlySales
	if err := h.db.Model(&models.Order{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') as month, COALESCE(SUM(total), 0) as revenue, count(*) as orders").
		Where("status NOT IN ? AND created_at >= CURRENT_DATE - INTERVAL '12 months'",
			[]string{models.StatusCancelled, models.StatusRefunded}).
		Group("month").
		Order("month asc").
		Scan(&monthly).Error; err != nil {
		return err
	}

	// Per-product performance from order item snapshots
	type productPerformance struct {
		ProductName string  `json:"product_name"`
		UnitsSold   int64   `json:"units_sold"`
		Revenue     float64 `json:"revenue"`
	}
	var topProducts []productPerformance
	if err := h.db.Model(&models.OrderItem{}).
		Select("order_items.product_name, SUM(order_items.quantity) as units_sold, SUM(order_items.unit_price * order_items.quantity) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status NOT IN ?", []string{models.StatusCancelled, models.StatusRefunded}).
		Group("order_items.product_name").
		Order("revenue desc").
		Limit(20).
		Scan(&topProducts).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_orders":     totalOrders,
			"orders_by_status": ordersByStatus,
			"total_revenue":    totalRevenue,
			"monthly_sales":    monthly,
			"top_products":     topProducts,
		},
	})
}

// CouponHandler manages admin coupon CRUD.
type CouponHandler struct {
	db *gorm.DB
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(db *gorm.DB) *CouponHandler {
	return &CouponHandler{db: db}
}

// ListCoupons returns all coupons, newest first.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := h.db.Order("created_at desc").Find(&coupons).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": coupons})
}

// CreateCoupon persists a coupon, storing the code upper-case.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	coupon.Code = normalizeCouponCode(coupon.Code)
	if coupon.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}
	if coupon.DiscountType != models.DiscountPercentage && coupon.DiscountType != models.DiscountFixed {
		return fiber.NewError(fiber.StatusBadRequest, "discount_type must be percentage or fixed")
	}
	if coupon.Value <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "value must be positive")
	}

	if err := h.db.Create(&coupon).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": coupon})
}

// DeleteCoupon removes a coupon.
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.db.Delete(&models.Coupon{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ShippingMethodHandler manages admin shipping method CRUD.
type ShippingMethodHandler struct {
	db *gorm.DB
}

// NewShippingMethodHandler constructs ShippingMethodHandler.
func NewShippingMethodHandler(db *gorm.DB) *ShippingMethodHandler {
	return &ShippingMethodHandler{db: db}
}

// ListShippingMethods returns every shipping method including inactive
// ones.
func (h *ShippingMethodHandler) ListShippingMethods(c *fiber.Ctx) error {
	var methods []models.ShippingMethod
	if err := h.db.Order("cost asc").Find(&methods).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": methods})
}

// CreateShippingMethod persists a shipping method.
func (h *ShippingMethodHandler) CreateShippingMethod(c *fiber.Ctx) error {
	var method models.ShippingMethod
	if err := c.BodyParser(&method); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if method.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if method.Cost < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cost must be non-negative")
	}

	if err := h.db.Create(&method).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": method})
}

// DeleteShippingMethod removes a shipping method.
func (h *ShippingMethodHandler) DeleteShippingMethod(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.db.Delete(&models.ShippingMethod{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
