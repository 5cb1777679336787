package shared

import (
	"context"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures. Single-query reads bypass the unit of work
	// entirely and go through CouponReader.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Coupons() CouponRepository
	Usages() UsageRepository
	DB() db.DBTX
}

type CouponRepository interface {
	// Create inserts and returns the stored copy with id and timestamps
	// filled. A code collision surfaces as KindDuplicateCode without
	// aborting the enclosing transaction; any other unique violation
	// aborts it and surfaces as KindDuplicateKey.
	Create(ctx context.Context, dbtx db.DBTX, c *coupon.Coupon) (*coupon.Coupon, error)
	// FindByCodeForUpdate serializes every concurrent redemption of the same
	// coupon behind one row lock. Excludes soft-deleted rows.
	FindByCodeForUpdate(ctx context.Context, dbtx db.DBTX, code string) (*coupon.Coupon, error)
	FindActiveByOwnerForUpdate(ctx context.Context, dbtx db.DBTX, ownerID uuid.UUID, typ coupon.Type) (*coupon.Coupon, error)
	// IncrementTotalUses bumps the counter by exactly 1 and returns the new
	// value. Callers must hold the row lock.
	IncrementTotalUses(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (int32, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status coupon.Status) error
	SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	Restore(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type UsageRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, entry *coupon.UsageEntry) (*coupon.UsageEntry, error)
	// CountByRedeemer backs the per-redeemer cap. Only safe under the coupon
	// row lock; see the redemption command.
	CountByRedeemer(ctx context.Context, dbtx db.DBTX, couponID, redeemerID uuid.UUID) (int64, error)
}

// CouponReader is the unlocked read path used by previews and by the
// fast-fail step of redemption.
type CouponReader interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filters OwnerFilters) ([]coupon.Coupon, error)
	CountUsagesByRedeemer(ctx context.Context, couponID, redeemerID uuid.UUID) (int64, error)
}

type OwnerFilters struct {
	Type   *coupon.Type
	Status *coupon.Status
}
