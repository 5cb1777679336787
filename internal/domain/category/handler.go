// Package category is the extension point that lets unrelated feature
// domains (purchases, invites, feature unlocks) attach validation rules and
// post-redemption effects to coupons without the engine knowing about them.
package category

import (
	"context"

	"coupon-engine/internal/domain/coupon"

	"github.com/google/uuid"
)

// Well-known categories wired at startup. Nothing restricts the registry to
// these; embedding applications register whatever names they own.
const (
	PurchaseDiscount = "purchase_discount"
	InviteReward     = "invite_reward"
)

// ValidationResult is a handler's verdict on a redemption attempt.
// An empty Reason on rejection is reported as coupon.ReasonHandlerRejected.
type ValidationResult struct {
	Valid  bool
	Reason coupon.Reason
}

type EffectDescription struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SettingsField describes one entry of the per-category settings schema an
// admin fills in when issuing a coupon of this category.
type SettingsField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Type     string `json:"type"` // "number" | "string" | "bool"
	Required bool   `json:"required"`
}

// Handler bundles the optional capabilities a consumer domain may provide.
// Every func field is nilable; domains implement only what they need.
//
//   - ValidateForUse runs after the core evaluator passes and before any
//     mutation; it may reject with a domain reason.
//   - ResolveEffect computes, without side effects, what redemption would do
//     (e.g. a discount amount) for previews and for the committed result.
//   - OnRedeemed fires once after the redemption transaction has committed.
//     It runs outside the row lock; failures are logged, never rolled back.
//   - DescribeEffect is synchronous display-only metadata.
type Handler struct {
	Label          string
	SettingsFields []SettingsField

	ValidateForUse func(ctx context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, metadata map[string]any) (ValidationResult, error)
	ResolveEffect  func(ctx context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, metadata map[string]any) (map[string]any, error)
	OnRedeemed     func(ctx context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, metadata map[string]any, usage *coupon.UsageEntry) error
	DescribeEffect func(c *coupon.Coupon) *EffectDescription
}
