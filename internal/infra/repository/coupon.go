package repository

import (
	"context"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/infra/db"
	"coupon-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, code, name, type, status, category, valid_from, valid_until,
	max_total_uses, max_uses_per_redeemer, current_total_uses, owner_id, settings,
	created_at, updated_at, deleted_at`

const (
	// ON CONFLICT DO NOTHING keeps the enclosing transaction alive on a code
	// collision, so issuance can retry with a fresh code without a savepoint.
	sqlInsertCoupon = `INSERT INTO coupons
		(code, name, type, status, category, valid_from, valid_until,
		 max_total_uses, max_uses_per_redeemer, owner_id, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) WHERE deleted_at IS NULL DO NOTHING
		RETURNING id, created_at, updated_at`

	sqlSelectCouponByCodeForUpdate = `SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1 AND deleted_at IS NULL
		FOR UPDATE`

	sqlSelectActiveByOwnerForUpdate = `SELECT ` + couponColumns + `
		FROM coupons
		WHERE owner_id = $1 AND type = $2 AND status = 'active' AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE`

	sqlIncrementTotalUses = `UPDATE coupons
		SET current_total_uses = current_total_uses + 1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING current_total_uses`

	sqlUpdateCouponStatus = `UPDATE coupons
		SET status = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	sqlSoftDeleteCoupon = `UPDATE coupons
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	sqlRestoreCoupon = `UPDATE coupons
		SET deleted_at = NULL, updated_at = now()
		WHERE id = $1 AND deleted_at IS NOT NULL`
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) Create(ctx context.Context, dbtx db.DBTX, c *coupon.Coupon) (*coupon.Coupon, error) {
	settings := c.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	var (
		id        uuid.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, sqlInsertCoupon,
		c.Code,
		c.Name,
		string(c.Type),
		string(c.Status),
		pgconv.StringPtrToPgtype(c.Category),
		pgconv.TimePtrToPgtype(c.ValidFrom),
		pgconv.TimePtrToPgtype(c.ValidUntil),
		pgconv.Int32PtrToPgtype(c.MaxTotalUses),
		pgconv.Int32PtrToPgtype(c.MaxUsesPerRedeemer),
		pgconv.UUIDPtrToPgtype(c.OwnerID),
		settings,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// suppressed by ON CONFLICT: the code is already taken
			return nil, infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateCode)
		}
		return nil, infra.WrapRepoErr("failed to create coupon", err)
	}

	saved := *c
	saved.ID = id
	saved.Settings = settings
	saved.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	saved.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &saved, nil
}

func (r *CouponRepository) FindByCodeForUpdate(ctx context.Context, dbtx db.DBTX, code string) (*coupon.Coupon, error) {
	row := dbtx.QueryRow(ctx, sqlSelectCouponByCodeForUpdate, code)
	c, err := scanCoupon(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock coupon by code", err)
	}
	return c, nil
}

func (r *CouponRepository) FindActiveByOwnerForUpdate(ctx context.Context, dbtx db.DBTX, ownerID uuid.UUID, typ coupon.Type) (*coupon.Coupon, error) {
	row := dbtx.QueryRow(ctx, sqlSelectActiveByOwnerForUpdate, ownerID, string(typ))
	c, err := scanCoupon(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("owner coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock coupon by owner", err)
	}
	return c, nil
}

func (r *CouponRepository) IncrementTotalUses(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (int32, error) {
	var total int32
	if err := dbtx.QueryRow(ctx, sqlIncrementTotalUses, id).Scan(&total); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to increment coupon uses", err)
	}
	return total, nil
}

func (r *CouponRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status coupon.Status) error {
	tag, err := dbtx.Exec(ctx, sqlUpdateCouponStatus, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update coupon status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, sqlSoftDeleteCoupon, id)
	if err != nil {
		return infra.WrapRepoErr("failed to soft delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) Restore(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, sqlRestoreCoupon, id)
	if err != nil {
		return infra.WrapRepoErr("failed to restore coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
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
