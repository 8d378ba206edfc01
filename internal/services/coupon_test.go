package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/printly/internal/models"
)

func ptr[T any](v T) *T { return &v }

func activeCoupon(discountType string, value float64) *models.Coupon {
	return &models.Coupon{
		Code:         "SPRING10",
		DiscountType: discountType,
		Value:        value,
		Active:       true,
	}
}

func TestEvaluateCouponPercentage(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountPercentage, 10)
	discount, err := EvaluateCoupon(coupon, 200, now)
	require.NoError(t, err)
	require.Equal(t, 20.0, discount)

	// MaxDiscount caps the percentage result.
	coupon.MaxDiscount = ptr(15.0)
	discount, err = EvaluateCoupon(coupon, 200, now)
	require.NoError(t, err)
	require.Equal(t, 15.0, discount)

	// Cap does not kick in below the threshold.
	discount, err = EvaluateCoupon(coupon, 100, now)
	require.NoError(t, err)
	require.Equal(t, 10.0, discount)
}

func TestEvaluateCouponFixed(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountFixed, 25)
	discount, err := EvaluateCoupon(coupon, 100, now)
	require.NoError(t, err)
	require.Equal(t, 25.0, discount)

	// A fixed discount never exceeds the total.
	discount, err = EvaluateCoupon(coupon, 10, now)
	require.NoError(t, err)
	require.Equal(t, 10.0, discount)
}

func TestEvaluateCouponValidityWindow(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountFixed, 5)
	coupon.ValidFrom = ptr(now.Add(time.Hour))
	_, err := EvaluateCoupon(coupon, 100, now)
	require.ErrorIs(t, err, ErrCouponNotStarted)

	coupon = activeCoupon(models.DiscountFixed, 5)
	coupon.ValidUntil = ptr(now.Add(-time.Hour))
	_, err = EvaluateCoupon(coupon, 100, now)
	require.ErrorIs(t, err, ErrCouponExpired)

	coupon = activeCoupon(models.DiscountFixed, 5)
	coupon.ValidFrom = ptr(now.Add(-time.Hour))
	coupon.ValidUntil = ptr(now.Add(time.Hour))
	discount, err := EvaluateCoupon(coupon, 100, now)
	require.NoError(t, err)
	require.Equal(t, 5.0, discount)
}

func TestEvaluateCouponUsageLimit(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountFixed, 5)
	coupon.UsageLimit = ptr(3)
	coupon.UsedCount = 3
	_, err := EvaluateCoupon(coupon, 100, now)
	require.ErrorIs(t, err, ErrCouponExhausted)

	coupon.UsedCount = 2
	_, err = EvaluateCoupon(coupon, 100, now)
	require.NoError(t, err)
}

func TestEvaluateCouponMinPurchase(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountPercentage, 10)
	coupon.MinPurchase = ptr(50.0)

	_, err := EvaluateCoupon(coupon, 49.99, now)
	var minErr ErrMinPurchase
	require.ErrorAs(t, err, &minErr)
	require.Equal(t, 50.0, minErr.Minimum)

	discount, err := EvaluateCoupon(coupon, 50, now)
	require.NoError(t, err)
	require.Equal(t, 5.0, discount)
}

func TestEvaluateCouponInactive(t *testing.T) {
	now := time.Now()

	coupon := activeCoupon(models.DiscountFixed, 5)
	coupon.Active = false
	_, err := EvaluateCoupon(coupon, 100, now)
	require.ErrorIs(t, err, ErrCouponNotFound)

	_, err = EvaluateCoupon(nil, 100, now)
	require.ErrorIs(t, err, ErrCouponNotFound)

	coupon = activeCoupon("bogus", 5)
	_, err = EvaluateCoupon(coupon, 100, now)
	require.ErrorIs(t, err, ErrCouponNotFound)
}
