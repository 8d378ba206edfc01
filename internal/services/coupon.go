package services

import (
	"errors"
	"time"

	"github.com/example/printly/internal/models"
)

// Coupon evaluation errors. Handlers map ErrCouponNotFound to 404 and
// the rest to 400.
var (
	ErrCouponNotFound   = errors.New("Invalid coupon code")
	ErrCouponNotStarted = errors.New("Coupon is not active yet")
	ErrCouponExpired    = errors.New("Coupon has expired")
	ErrCouponExhausted  = errors.New("Coupon usage limit reached")
)

// ErrMinPurchase indicates the cart total is below the coupon minimum.
type ErrMinPurchase struct {
	Minimum float64
}

func (e ErrMinPurchase) Error() string {
	return "Order total does not meet the coupon minimum purchase"
}

// EvaluateCoupon validates a coupon against a cart total at a point in
// time and returns the discount amount. Percentage coupons are clamped
// to MaxDiscount when set; fixed coupons are clamped to the total so a
// discount can never push the total negative.
func EvaluateCoupon(coupon *models.Coupon, total float64, now time.Time) (float64, error) {
	if coupon == nil || !coupon.Active {
		return 0, ErrCouponNotFound
	}

	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return 0, ErrCouponNotStarted
	}

	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return 0, ErrCouponExpired
	}

	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return 0, ErrCouponExhausted
	}

	if coupon.MinPurchase != nil && total < *coupon.MinPurchase {
		return 0, ErrMinPurchase{Minimum: *coupon.MinPurchase}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = total * coupon.Value / 100
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case models.DiscountFixed:
		discount = coupon.Value
		if discount > total {
			discount = total
		}
	default:
		return 0, ErrCouponNotFound
	}

	if discount < 0 {
		discount = 0
	}

	return discount, nil
}
