//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func fixedCount(n int64) coupon.UsageCount {
	return func() (int64, error) { return n, nil }
}

func TestEvaluate(t *testing.T) {
	redeemer := uuid.New()

	t.Run("unconstrained active coupon is usable", func(t *testing.T) {
		c := builder.NewCouponBuilder().Build()
		dec, err := coupon.Evaluate(c, now, nil, coupon.NoUsage)
		require.NoError(t, err)
		assert.True(t, dec.Usable)
		assert.Empty(t, dec.Reason)
	})

	t.Run("check order is fixed", func(t *testing.T) {
		// every check would fail here; inactive must win
		past := now.Add(-48 * time.Hour)
		c := builder.NewCouponBuilder().
			WithStatus(coupon.StatusInactive).
			WithWindow(now.Add(24*time.Hour), past).
			WithMaxTotalUses(1).
			WithCurrentTotalUses(1).
			WithMaxUsesPerRedeemer(1).
			Build()

		dec, err := coupon.Evaluate(c, now, nil, fixedCount(5))
		require.NoError(t, err)
		assert.Equal(t, coupon.ReasonInactive, dec.Reason)
	})

	t.Run("time window", func(t *testing.T) {
		from := now.Add(-time.Hour)
		until := now.Add(time.Hour)

		tests := []struct {
			name   string
			at     time.Time
			reason coupon.Reason
			usable bool
		}{
			{name: "before window", at: from.Add(-time.Second), reason: coupon.ReasonNotStarted},
			{name: "exactly at valid_from", at: from, usable: true},
			{name: "inside window", at: now, usable: true},
			{name: "exactly at valid_until", at: until, usable: true},
			{name: "after window", at: until.Add(time.Second), reason: coupon.ReasonExpired},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := builder.NewCouponBuilder().WithWindow(from, until).Build()
				dec, err := coupon.Evaluate(c, tt.at, nil, coupon.NoUsage)
				require.NoError(t, err)
				assert.Equal(t, tt.usable, dec.Usable)
				assert.Equal(t, tt.reason, dec.Reason)
			})
		}
	})

	t.Run("total cap", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMaxTotalUses(3).WithCurrentTotalUses(3).Build()
		dec, err := coupon.Evaluate(c, now, nil, coupon.NoUsage)
		require.NoError(t, err)
		assert.Equal(t, coupon.ReasonMaxTotalReached, dec.Reason)

		c = builder.NewCouponBuilder().WithMaxTotalUses(3).WithCurrentTotalUses(2).Build()
		dec, err = coupon.Evaluate(c, now, nil, coupon.NoUsage)
		require.NoError(t, err)
		assert.True(t, dec.Usable)
	})

	t.Run("per-redeemer cap requires identity", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMaxUsesPerRedeemer(1).Build()

		dec, err := coupon.Evaluate(c, now, nil, fixedCount(0))
		require.NoError(t, err)
		assert.Equal(t, coupon.ReasonUserIDRequired, dec.Reason)

		dec, err = coupon.Evaluate(c, now, &redeemer, fixedCount(0))
		require.NoError(t, err)
		assert.True(t, dec.Usable)

		dec, err = coupon.Evaluate(c, now, &redeemer, fixedCount(1))
		require.NoError(t, err)
		assert.Equal(t, coupon.ReasonMaxPerUserReached, dec.Reason)
	})

	t.Run("usage count is not queried without a per-redeemer cap", func(t *testing.T) {
		c := builder.NewCouponBuilder().Build()
		called := false
		dec, err := coupon.Evaluate(c, now, &redeemer, func() (int64, error) {
			called = true
			return 0, nil
		})
		require.NoError(t, err)
		assert.True(t, dec.Usable)
		assert.False(t, called)
	})

	t.Run("usage count failure propagates", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMaxUsesPerRedeemer(1).Build()
		wantErr := assert.AnError
		_, err := coupon.Evaluate(c, now, &redeemer, func() (int64, error) {
			return 0, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestSnapshotMetadata(t *testing.T) {
	owner := uuid.New()
	c := builder.NewCouponBuilder().
		WithCode("WINTER10").
		WithName("冬クーポン").
		WithOwner(owner).
		WithCategory("purchase_discount").
		Build()

	t.Run("snapshot fields win over caller keys", func(t *testing.T) {
		meta := coupon.SnapshotMetadata(c, 7, map[string]any{
			"code":           "SPOOFED",
			"payment_amount": 4200,
		})

		assert.Equal(t, "WINTER10", meta["code"])
		assert.Equal(t, "official", meta["type"])
		assert.Equal(t, "冬クーポン", meta["name"])
		assert.Equal(t, int32(7), meta["current_total_uses"])
		assert.Equal(t, owner.String(), meta["owner_id"])
		assert.Equal(t, "purchase_discount", meta["category"])
		assert.Equal(t, 4200, meta["payment_amount"])
	})

	t.Run("optional fields are omitted when absent", func(t *testing.T) {
		plain := builder.NewCouponBuilder().Build()
		meta := coupon.SnapshotMetadata(plain, 1, nil)
		assert.NotContains(t, meta, "owner_id")
		assert.NotContains(t, meta, "category")
	})
}

func TestNewCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "uppercases and trims", input: "  summer25 ", want: "SUMMER25"},
		{name: "minimum length", input: "ABC", want: "ABC"},
		{name: "too short", input: "AB", errIs: coupon.ErrInvalidCode},
		{name: "too long", input: "ABCDEFGHJKMNPQRSTUVWX", errIs: coupon.ErrInvalidCode},
		{name: "rejects symbols", input: "SUMMER-25", errIs: coupon.ErrInvalidCode},
		{name: "empty", input: "", errIs: coupon.ErrInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := coupon.NewCode(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}
