package response

import (
	"time"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/usecase/commands"
	"coupon-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponResponse struct {
	ID                 uuid.UUID      `json:"id"`
	Code               string         `json:"code"`
	Name               string         `json:"name"`
	Type               string         `json:"type"`
	Status             string         `json:"status"`
	Category           *string        `json:"category,omitempty"`
	ValidFrom          *time.Time     `json:"validFrom,omitempty"`
	ValidUntil         *time.Time     `json:"validUntil,omitempty"`
	MaxTotalUses       *int32         `json:"maxTotalUses,omitempty"`
	MaxUsesPerRedeemer *int32         `json:"maxUsesPerRedeemer,omitempty"`
	CurrentTotalUses   int32          `json:"currentTotalUses"`
	OwnerID            *uuid.UUID     `json:"ownerId,omitempty"`
	Settings           map[string]any `json:"settings,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type UsabilityResponse struct {
	Usable bool                        `json:"usable"`
	Reason string                      `json:"reason,omitempty"`
	Coupon *CouponResponse             `json:"coupon,omitempty"`
	Effect *category.EffectDescription `json:"effect,omitempty"`
}

type ValidationResponse struct {
	Valid  bool           `json:"valid"`
	Reason string         `json:"reason,omitempty"`
	Effect map[string]any `json:"effect,omitempty"`
}

type UsageResponse struct {
	ID             uuid.UUID      `json:"id"`
	CouponID       uuid.UUID      `json:"couponId"`
	RedeemerUserID *uuid.UUID     `json:"redeemerUserId,omitempty"`
	Metadata       map[string]any `json:"metadata"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type RedeemResponse struct {
	Redeemed bool            `json:"redeemed"`
	Reason   string          `json:"reason,omitempty"`
	Coupon   *CouponResponse `json:"coupon,omitempty"`
	Usage    *UsageResponse  `json:"usage,omitempty"`
	Effect   map[string]any  `json:"effect,omitempty"`
}

type CategoryListResponse struct {
	Categories []CategoryItem `json:"categories"`
}

type CategoryItem struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

func FromCoupon(c *coupon.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}
	return &CouponResponse{
		ID:                 c.ID,
		Code:               c.Code,
		Name:               c.Name,
		Type:               string(c.Type),
		Status:             string(c.Status),
		Category:           c.Category,
		ValidFrom:          c.ValidFrom,
		ValidUntil:         c.ValidUntil,
		MaxTotalUses:       c.MaxTotalUses,
		MaxUsesPerRedeemer: c.MaxUsesPerRedeemer,
		CurrentTotalUses:   c.CurrentTotalUses,
		OwnerID:            c.OwnerID,
		Settings:           c.Settings,
		CreatedAt:          c.CreatedAt,
	}
}

func FromUsage(u *coupon.UsageEntry) *UsageResponse {
	if u == nil {
		return nil
	}
	return &UsageResponse{
		ID:             u.ID,
		CouponID:       u.CouponID,
		RedeemerUserID: u.RedeemerUserID,
		Metadata:       u.Metadata,
		CreatedAt:      u.CreatedAt,
	}
}

func FromUsability(r *queries.UsabilityResult) *UsabilityResponse {
	resp := &UsabilityResponse{
		Usable: r.Decision.Usable,
		Reason: string(r.Decision.Reason),
		Effect: r.Effect,
	}
	if r.Decision.Usable {
		resp.Coupon = FromCoupon(r.Coupon)
	}
	return resp
}

func FromValidation(o *queries.ValidationOutcome) *ValidationResponse {
	return &ValidationResponse{
		Valid:  o.Decision.Usable,
		Reason: string(o.Decision.Reason),
		Effect: o.Effect,
	}
}

func FromRedeemResult(r *commands.RedeemResult) *RedeemResponse {
	resp := &RedeemResponse{
		Redeemed: r.Decision.Usable,
		Reason:   string(r.Decision.Reason),
		Effect:   r.Effect,
	}
	if r.Decision.Usable {
		resp.Coupon = FromCoupon(r.Coupon)
		resp.Usage = FromUsage(r.Usage)
	}
	return resp
}
