package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/printly/internal/models"
	"github.com/example/printly/internal/services"
)

// CheckoutHandler serves coupon evaluation and shipping options.
type CheckoutHandler struct {
	db *gorm.DB
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(db *gorm.DB) *CheckoutHandler {
	return &CheckoutHandler{db: db}
}

type applyCouponRequest struct {
	Code  string  `json:"code"`
	Total float64 `json:"total"`
}

// ApplyCoupon evaluates a coupon code against a cart total. The usage
// counter is not incremented here; redemption happens at order
// finalization.
func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req applyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	var coupon models.Coupon
	if err := h.db.Where("upper(code) = ? AND active = ?", code, true).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, services.ErrCouponNotFound.Error())
		}
		return err
	}

	discount, err := services.EvaluateCoupon(&coupon, req.Total, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"coupon": fiber.Map{
			"code":            coupon.Code,
			"discount_type":   coupon.DiscountType,
			"discount_amount": discount,
		},
	})
}

// ListShippingMethods returns active shipping methods ordered by cost.
func (h *CheckoutHandler) ListShippingMethods(c *fiber.Ctx) error {
	var methods []models.ShippingMethod
	if err := h.db.Where("active = ?", true).Order("cost asc").Find(&methods).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": methods})
}
