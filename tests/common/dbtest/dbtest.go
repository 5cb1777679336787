//go:build e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"coupon-engine/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// ResetDB truncates all mutable tables so each subtest starts clean.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE coupon_usages, coupons RESTART IDENTITY CASCADE")
	return err
}

// CreateTestCoupon inserts a coupon row directly, bypassing the issuance
// path, so redemption tests control every column.
func CreateTestCoupon(t *testing.T, pool *pgxpool.Pool, c *coupon.Coupon) uuid.UUID {
	t.Helper()

	settings := c.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	ctx := context.Background()
	var id uuid.UUID
	err := pool.QueryRow(ctx, `INSERT INTO coupons
		(code, name, type, status, category, valid_from, valid_until,
		 max_total_uses, max_uses_per_redeemer, current_total_uses, owner_id, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		c.Code, c.Name, string(c.Type), string(c.Status), c.Category,
		c.ValidFrom, c.ValidUntil, c.MaxTotalUses, c.MaxUsesPerRedeemer,
		c.CurrentTotalUses, c.OwnerID, settings,
	).Scan(&id)
	require.NoError(t, err, "テスト用クーポンの作成に失敗")
	return id
}

// CountUsages returns the ledger row count for one coupon.
func CountUsages(t *testing.T, pool *pgxpool.Pool, couponID uuid.UUID) int64 {
	t.Helper()

	var n int64
	err := pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1", couponID).Scan(&n)
	require.NoError(t, err)
	return n
}

// CurrentTotalUses reads the denormalized counter on the coupon row.
func CurrentTotalUses(t *testing.T, pool *pgxpool.Pool, couponID uuid.UUID) int32 {
	t.Helper()

	var n int32
	err := pool.QueryRow(context.Background(),
		"SELECT current_total_uses FROM coupons WHERE id = $1", couponID).Scan(&n)
	require.NoError(t, err)
	return n
}
