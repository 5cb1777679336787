package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CachedCouponReader decorates a CouponReader with a short-TTL redis
// snapshot cache for the unlocked preview path. Staleness is acceptable
// there: the redemption transaction re-reads the row under a lock, so a
// cached snapshot can only ever make a preview wrong, never the ledger.
// Usage counts are never cached; they feed cap decisions directly.
type CachedCouponReader struct {
	inner shared.CouponReader
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedCouponReader(inner shared.CouponReader, rdb *redis.Client, ttl time.Duration) *CachedCouponReader {
	return &CachedCouponReader{inner: inner, rdb: rdb, ttl: ttl}
}

var _ shared.CouponReader = (*CachedCouponReader)(nil)

func cacheKey(code string) string {
	return "coupon:snapshot:" + strings.ToUpper(strings.TrimSpace(code))
}

func (r *CachedCouponReader) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	key := cacheKey(code)

	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var c coupon.Coupon
		if unmarshalErr := json.Unmarshal(raw, &c); unmarshalErr == nil {
			return &c, nil
		}
		// corrupt entry: drop it and fall through to the DB
		r.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Debug("coupon cache read failed, falling back to db", "error", err.Error())
	}

	c, err := r.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(c); marshalErr == nil {
		if setErr := r.rdb.Set(ctx, key, raw, r.ttl).Err(); setErr != nil {
			slog.Debug("coupon cache write failed", "error", setErr.Error())
		}
	}
	return c, nil
}

func (r *CachedCouponReader) ListByOwner(ctx context.Context, ownerID uuid.UUID, filters shared.OwnerFilters) ([]coupon.Coupon, error) {
	return r.inner.ListByOwner(ctx, ownerID, filters)
}

func (r *CachedCouponReader) CountUsagesByRedeemer(ctx context.Context, couponID, redeemerID uuid.UUID) (int64, error) {
	return r.inner.CountUsagesByRedeemer(ctx, couponID, redeemerID)
}

// Invalidate removes the snapshot after a successful redemption so the
// next preview sees the fresh counter sooner than the TTL. Administrative
// changes go by coupon id, not code, and rely on the TTL instead.
func (r *CachedCouponReader) Invalidate(ctx context.Context, code string) {
	if err := r.rdb.Del(ctx, cacheKey(code)).Err(); err != nil {
		slog.Debug("coupon cache invalidation failed", "code", code, "error", err.Error())
	}
}

// Invalidator is implemented by readers that maintain a snapshot cache.
// The plain DB-backed reader does not; commands probe for it.
type Invalidator interface {
	Invalidate(ctx context.Context, code string)
}

var _ Invalidator = (*CachedCouponReader)(nil)
