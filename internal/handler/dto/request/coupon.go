package request

import (
	"strings"
	"time"
)

type RedeemRequest struct {
	Code     string         `json:"code" binding:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ValidateCouponRequest struct {
	Code     string         `json:"code" binding:"required"`
	Category string         `json:"category" binding:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type CreateCouponRequest struct {
	Code               *string        `json:"code,omitempty"`
	Name               string         `json:"name" binding:"required"`
	Type               string         `json:"type" binding:"required"`
	Category           *string        `json:"category,omitempty"`
	ValidFrom          *time.Time     `json:"valid_from,omitempty"`
	ValidUntil         *time.Time     `json:"valid_until,omitempty"`
	MaxTotalUses       *int32         `json:"max_total_uses,omitempty"`
	MaxUsesPerRedeemer *int32         `json:"max_uses_per_redeemer,omitempty"`
	OwnerID            *string        `json:"owner_id,omitempty"`
	Settings           map[string]any `json:"settings,omitempty"`
}

func (r CreateCouponRequest) GetCode() string {
	if r.Code == nil {
		return ""
	}
	return strings.TrimSpace(*r.Code)
}

type UpdateCouponStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
