//go:build unit

package invite_test

import (
	"context"
	"testing"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/domain/invite"
	"coupon-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grantCall struct {
	userID uuid.UUID
	points int64
}

type recordingGranter struct {
	calls []grantCall
	err   error
}

func (g *recordingGranter) Grant(_ context.Context, userID uuid.UUID, points int64) error {
	g.calls = append(g.calls, grantCall{userID: userID, points: points})
	return g.err
}

func registeredHandler(t *testing.T, granter invite.RewardGranter) category.Handler {
	t.Helper()
	reg := category.NewRegistry()
	require.NoError(t, invite.Register(reg, granter))
	h, ok := reg.Lookup(category.InviteReward)
	require.True(t, ok)
	return h
}

func inviteCoupon(owner uuid.UUID, settings map[string]any) *coupon.Coupon {
	b := builder.NewCouponBuilder().
		WithType(coupon.TypeInvite).
		WithCategory(category.InviteReward).
		WithOwner(owner)
	if settings != nil {
		b.WithSettings(settings)
	}
	return b.Build()
}

func TestValidateForUse(t *testing.T) {
	h := registeredHandler(t, nil)
	ctx := context.Background()
	owner := uuid.New()

	t.Run("other user may redeem", func(t *testing.T) {
		other := uuid.New()
		res, err := h.ValidateForUse(ctx, inviteCoupon(owner, nil), &other, nil)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("owner cannot redeem own invite", func(t *testing.T) {
		res, err := h.ValidateForUse(ctx, inviteCoupon(owner, nil), &owner, nil)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, invite.ReasonSelfInvite, res.Reason)
	})

	t.Run("anonymous redemption passes the self check", func(t *testing.T) {
		res, err := h.ValidateForUse(ctx, inviteCoupon(owner, nil), nil, nil)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})
}

func TestOnRedeemed(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	redeemer := uuid.New()
	usage := &coupon.UsageEntry{ID: uuid.New(), RedeemerUserID: &redeemer}

	t.Run("grants configured points to the inviter", func(t *testing.T) {
		granter := &recordingGranter{}
		h := registeredHandler(t, granter)

		c := inviteCoupon(owner, map[string]any{invite.SettingRewardPoints: float64(1200)})
		require.NoError(t, h.OnRedeemed(ctx, c, &redeemer, nil, usage))

		require.Len(t, granter.calls, 1)
		assert.Equal(t, owner, granter.calls[0].userID)
		assert.Equal(t, int64(1200), granter.calls[0].points)
	})

	t.Run("defaults points when not configured", func(t *testing.T) {
		granter := &recordingGranter{}
		h := registeredHandler(t, granter)

		require.NoError(t, h.OnRedeemed(ctx, inviteCoupon(owner, nil), &redeemer, nil, usage))

		require.Len(t, granter.calls, 1)
		assert.Equal(t, int64(500), granter.calls[0].points)
	})

	t.Run("nil granter only logs", func(t *testing.T) {
		h := registeredHandler(t, nil)
		assert.NoError(t, h.OnRedeemed(ctx, inviteCoupon(owner, nil), &redeemer, nil, usage))
	})

	t.Run("ownerless coupon is tolerated", func(t *testing.T) {
		granter := &recordingGranter{}
		h := registeredHandler(t, granter)

		c := builder.NewCouponBuilder().
			WithType(coupon.TypeInvite).
			WithCategory(category.InviteReward).
			Build()
		require.NoError(t, h.OnRedeemed(ctx, c, &redeemer, nil, usage))
		assert.Empty(t, granter.calls)
	})
}
