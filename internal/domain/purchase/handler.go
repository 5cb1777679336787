// Package purchase wires the purchase_discount coupon category: a percent
// discount applied to a payment, gated on a minimum amount.
package purchase

import (
	"context"
	"fmt"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"

	"github.com/google/uuid"
)

const (
	SettingDiscountPercent  = "discount_percent"
	SettingMinPaymentAmount = "min_payment_amount"

	MetadataPaymentAmount = "payment_amount"
)

// ReasonPaymentBelowMinimum is this domain's own rejection reason; the
// engine passes it through untouched.
const ReasonPaymentBelowMinimum coupon.Reason = "payment_below_minimum"

// Register installs the purchase_discount handler.
func Register(reg *category.Registry) error {
	return reg.Register(category.PurchaseDiscount, category.Handler{
		Label: "購入割引",
		SettingsFields: []category.SettingsField{
			{Key: SettingDiscountPercent, Label: "割引率(%)", Type: "number", Required: true},
			{Key: SettingMinPaymentAmount, Label: "最低決済金額", Type: "number", Required: false},
		},
		ValidateForUse: validateForUse,
		ResolveEffect:  resolveEffect,
		DescribeEffect: describeEffect,
	})
}

func validateForUse(_ context.Context, c *coupon.Coupon, _ *uuid.UUID, metadata map[string]any) (category.ValidationResult, error) {
	amount, ok := numericValue(metadata[MetadataPaymentAmount])
	if !ok {
		return category.ValidationResult{Valid: false, Reason: coupon.ReasonHandlerRejected}, nil
	}

	if minAmount, ok := numericValue(c.Settings[SettingMinPaymentAmount]); ok && amount < minAmount {
		return category.ValidationResult{Valid: false, Reason: ReasonPaymentBelowMinimum}, nil
	}
	return category.ValidationResult{Valid: true}, nil
}

func resolveEffect(_ context.Context, c *coupon.Coupon, _ *uuid.UUID, metadata map[string]any) (map[string]any, error) {
	percent, ok := numericValue(c.Settings[SettingDiscountPercent])
	if !ok {
		return nil, fmt.Errorf("coupon %s has no %s setting", c.Code, SettingDiscountPercent)
	}

	amount, _ := numericValue(metadata[MetadataPaymentAmount])
	discount := amount * percent / 100

	return map[string]any{
		"discount_percent": percent,
		"discount_amount":  discount,
		"payment_amount":   amount,
	}, nil
}

func describeEffect(c *coupon.Coupon) *category.EffectDescription {
	percent, ok := numericValue(c.Settings[SettingDiscountPercent])
	if !ok {
		return nil
	}
	return &category.EffectDescription{
		Label:       fmt.Sprintf("%g%% OFF", percent),
		Description: fmt.Sprintf("決済金額から%g%%割引", percent),
	}
}

// numericValue tolerates the types jsonb decoding and plain Go callers
// produce for numbers.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
