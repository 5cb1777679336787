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

const (
	sqlInsertUsage = `INSERT INTO coupon_usages (coupon_id, redeemer_user_id, metadata)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	sqlCountUsagesByRedeemer = `SELECT count(*)
		FROM coupon_usages
		WHERE coupon_id = $1 AND redeemer_user_id = $2`
)

// UsageRepository appends to the redemption ledger. Rows are immutable;
// there is deliberately no update or delete here.
type UsageRepository struct{}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{}
}

func (r *UsageRepository) Append(ctx context.Context, dbtx db.DBTX, entry *coupon.UsageEntry) (*coupon.UsageEntry, error) {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	var (
		id        uuid.UUID
		createdAt pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, sqlInsertUsage,
		entry.CouponID,
		pgconv.UUIDPtrToPgtype(entry.RedeemerUserID),
		metadata,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to append usage entry", err)
	}

	saved := *entry
	saved.ID = id
	saved.Metadata = metadata
	saved.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &saved, nil
}

func (r *UsageRepository) CountByRedeemer(ctx context.Context, dbtx db.DBTX, couponID, redeemerID uuid.UUID) (int64, error) {
	var count int64
	if err := dbtx.QueryRow(ctx, sqlCountUsagesByRedeemer, couponID, redeemerID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count usages by redeemer", err)
	}
	return count, nil
}
