// Package invite wires the invite_reward coupon category: redeeming another
// user's invite code grants the inviter reward points.
package invite

import (
	"context"
	"log/slog"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"

	"github.com/google/uuid"
)

const (
	SettingRewardPoints = "reward_points"

	defaultRewardPoints = 500
)

const ReasonSelfInvite coupon.Reason = "self_invite"

// RewardGranter credits points to the inviter. A nil granter is allowed;
// redemptions then only log the grant they would have made.
type RewardGranter interface {
	Grant(ctx context.Context, userID uuid.UUID, points int64) error
}

// Register installs the invite_reward handler.
func Register(reg *category.Registry, granter RewardGranter) error {
	return reg.Register(category.InviteReward, category.Handler{
		Label: "招待特典",
		SettingsFields: []category.SettingsField{
			{Key: SettingRewardPoints, Label: "付与ポイント", Type: "number", Required: false},
		},
		ValidateForUse: validateForUse,
		OnRedeemed:     onRedeemed(granter),
		DescribeEffect: describeEffect,
	})
}

func validateForUse(_ context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, _ map[string]any) (category.ValidationResult, error) {
	if c.OwnerID != nil && redeemerID != nil && *c.OwnerID == *redeemerID {
		return category.ValidationResult{Valid: false, Reason: ReasonSelfInvite}, nil
	}
	return category.ValidationResult{Valid: true}, nil
}

func onRedeemed(granter RewardGranter) func(ctx context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, metadata map[string]any, usage *coupon.UsageEntry) error {
	return func(ctx context.Context, c *coupon.Coupon, redeemerID *uuid.UUID, _ map[string]any, usage *coupon.UsageEntry) error {
		if c.OwnerID == nil {
			slog.Warn("invite coupon without owner redeemed", "coupon_id", c.ID, "usage_id", usage.ID)
			return nil
		}

		points := rewardPoints(c)
		if granter == nil {
			slog.Info("invite reward grant skipped, no granter configured",
				"inviter_id", *c.OwnerID, "points", points, "usage_id", usage.ID)
			return nil
		}
		return granter.Grant(ctx, *c.OwnerID, points)
	}
}

func describeEffect(c *coupon.Coupon) *category.EffectDescription {
	return &category.EffectDescription{
		Label:       "招待特典",
		Description: "招待した側にポイントが付与されます",
	}
}

func rewardPoints(c *coupon.Coupon) int64 {
	switch n := c.Settings[SettingRewardPoints].(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return defaultRewardPoints
}
