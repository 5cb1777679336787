package builder

import (
	"time"

	"coupon-engine/internal/domain/coupon"

	"github.com/google/uuid"
)

// CouponBuilder assembles coupon snapshots for tests. The zero-configured
// build is a usable, unconstrained official coupon.
type CouponBuilder struct {
	c coupon.Coupon
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &CouponBuilder{
		c: coupon.Coupon{
			ID:        uuid.New(),
			Code:      "SUMMER25",
			Name:      "サマーキャンペーン",
			Type:      coupon.TypeOfficial,
			Status:    coupon.StatusActive,
			Settings:  map[string]any{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *CouponBuilder) WithID(id uuid.UUID) *CouponBuilder {
	b.c.ID = id
	return b
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.c.Code = code
	return b
}

func (b *CouponBuilder) WithName(name string) *CouponBuilder {
	b.c.Name = name
	return b
}

func (b *CouponBuilder) WithType(t coupon.Type) *CouponBuilder {
	b.c.Type = t
	return b
}

func (b *CouponBuilder) WithStatus(s coupon.Status) *CouponBuilder {
	b.c.Status = s
	return b
}

func (b *CouponBuilder) WithCategory(cat string) *CouponBuilder {
	b.c.Category = &cat
	return b
}

func (b *CouponBuilder) WithWindow(from, until time.Time) *CouponBuilder {
	b.c.ValidFrom = &from
	b.c.ValidUntil = &until
	return b
}

func (b *CouponBuilder) WithValidFrom(from time.Time) *CouponBuilder {
	b.c.ValidFrom = &from
	return b
}

func (b *CouponBuilder) WithValidUntil(until time.Time) *CouponBuilder {
	b.c.ValidUntil = &until
	return b
}

func (b *CouponBuilder) WithMaxTotalUses(n int32) *CouponBuilder {
	b.c.MaxTotalUses = &n
	return b
}

func (b *CouponBuilder) WithMaxUsesPerRedeemer(n int32) *CouponBuilder {
	b.c.MaxUsesPerRedeemer = &n
	return b
}

func (b *CouponBuilder) WithCurrentTotalUses(n int32) *CouponBuilder {
	b.c.CurrentTotalUses = n
	return b
}

func (b *CouponBuilder) WithOwner(id uuid.UUID) *CouponBuilder {
	b.c.OwnerID = &id
	return b
}

func (b *CouponBuilder) WithSettings(settings map[string]any) *CouponBuilder {
	b.c.Settings = settings
	return b
}

// Build returns a fresh copy each call so tests can mutate freely.
func (b *CouponBuilder) Build() *coupon.Coupon {
	c := b.c
	return &c
}
