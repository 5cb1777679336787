package readstore

import (
	"context"
	"strings"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/infra/db"
	"coupon-engine/internal/pkg/pgconv"
	"coupon-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, code, name, type, status, category, valid_from, valid_until,
	max_total_uses, max_uses_per_redeemer, current_total_uses, owner_id, settings,
	created_at, updated_at, deleted_at`

const (
	sqlSelectCouponByCode = `SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1 AND deleted_at IS NULL`

	sqlSelectCouponsByOwner = `SELECT ` + couponColumns + `
		FROM coupons
		WHERE owner_id = $1 AND deleted_at IS NULL
		AND ($2::text IS NULL OR type = $2)
		AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC`

	sqlCountUsages = `SELECT count(*)
		FROM coupon_usages
		WHERE coupon_id = $1 AND redeemer_user_id = $2`
)

// CouponReadStore serves the unlocked read path: previews and the fast-fail
// step of redemption. Anything it returns may be stale by the time a
// transaction runs; the locked re-validation is authoritative.
type CouponReadStore struct {
	dbtx db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{dbtx: dbtx}
}

var _ shared.CouponReader = (*CouponReadStore)(nil)

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	row := r.dbtx.QueryRow(ctx, sqlSelectCouponByCode, normalized)
	c, err := scanCoupon(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return c, nil
}

func (r *CouponReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, filters shared.OwnerFilters) ([]coupon.Coupon, error) {
	var typ, status *string
	if filters.Type != nil {
		s := string(*filters.Type)
		typ = &s
	}
	if filters.Status != nil {
		s := string(*filters.Status)
		status = &s
	}

	rows, err := r.dbtx.Query(ctx, sqlSelectCouponsByOwner, ownerID, typ, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons by owner", err)
	}
	defer rows.Close()

	var coupons []coupon.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon row", err)
		}
		coupons = append(coupons, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon rows", err)
	}
	return coupons, nil
}

func (r *CouponReadStore) CountUsagesByRedeemer(ctx context.Context, couponID, redeemerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.dbtx.QueryRow(ctx, sqlCountUsages, couponID, redeemerID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count usages", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*coupon.Coupon, error) {
	var (
		c          coupon.Coupon
		typ        string
		status     string
		category   pgtype.Text
		validFrom  pgtype.Timestamptz
		validUntil pgtype.Timestamptz
		maxTotal   pgtype.Int4
		maxPerUser pgtype.Int4
		ownerID    pgtype.UUID
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		deletedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &typ, &status, &category,
		&validFrom, &validUntil, &maxTotal, &maxPerUser,
		&c.CurrentTotalUses, &ownerID, &c.Settings,
		&createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Type = coupon.Type(typ)
	c.Status = coupon.Status(status)
	c.Category = pgconv.StringPtrFromPgtype(category)
	c.ValidFrom = pgconv.TimePtrFromPgtype(validFrom)
	c.ValidUntil = pgconv.TimePtrFromPgtype(validUntil)
	c.MaxTotalUses = pgconv.Int32PtrFromPgtype(maxTotal)
	c.MaxUsesPerRedeemer = pgconv.Int32PtrFromPgtype(maxPerUser)
	c.OwnerID = pgconv.UUIDPtrFromPgtype(ownerID)
	c.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	c.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	c.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)

	return &c, nil
}
