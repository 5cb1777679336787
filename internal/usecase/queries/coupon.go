package queries

import (
	"context"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/pkg/clock"
	"coupon-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// UsabilityResult is the preview outcome. Coupon is nil when the code does
// not resolve; Effect is display metadata from the category handler, present
// only when the coupon is usable and its handler describes one.
type UsabilityResult struct {
	Decision coupon.Decision
	Coupon   *coupon.Coupon
	Effect   *category.EffectDescription
}

// ValidationOutcome extends the preview with a category gate and a dry-run
// effect resolution.
type ValidationOutcome struct {
	Decision coupon.Decision
	Coupon   *coupon.Coupon
	Effect   map[string]any
}

type CouponQueries interface {
	// CheckUsability answers "could this code be redeemed right now" without
	// touching anything. The answer may be stale; redemption re-checks under
	// a lock.
	CheckUsability(ctx context.Context, code string, redeemerID *uuid.UUID) (*UsabilityResult, error)
	// ValidateForCategory is the preview a consumer domain calls before
	// offering a coupon field: core evaluation, then a category match, then
	// the handler's own validation, then a side-effect-free effect preview.
	ValidateForCategory(ctx context.Context, code, cat string, redeemerID *uuid.UUID, metadata map[string]any) (*ValidationOutcome, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filters shared.OwnerFilters) ([]coupon.Coupon, error)
	CategoryLabels() map[string]string
	Categories() []string
}

type couponQueriesImpl struct {
	reader   shared.CouponReader
	registry *category.Registry
	clock    clock.Clock
}

func NewCouponQueries(reader shared.CouponReader, registry *category.Registry, clock clock.Clock) CouponQueries {
	return &couponQueriesImpl{reader: reader, registry: registry, clock: clock}
}

func (q *couponQueriesImpl) CheckUsability(ctx context.Context, code string, redeemerID *uuid.UUID) (*UsabilityResult, error) {
	snap, dec, err := q.lookupAndEvaluate(ctx, code, redeemerID)
	if err != nil {
		return nil, err
	}
	result := &UsabilityResult{Decision: dec, Coupon: snap}
	if !dec.Usable || snap.Category == nil {
		return result, nil
	}
	if h, ok := q.registry.Lookup(*snap.Category); ok && h.DescribeEffect != nil {
		result.Effect = h.DescribeEffect(snap)
	}
	return result, nil
}

func (q *couponQueriesImpl) ValidateForCategory(ctx context.Context, code, cat string, redeemerID *uuid.UUID, metadata map[string]any) (*ValidationOutcome, error) {
	snap, dec, err := q.lookupAndEvaluate(ctx, code, redeemerID)
	if err != nil {
		return nil, err
	}
	if !dec.Usable {
		return &ValidationOutcome{Decision: dec, Coupon: snap}, nil
	}

	if snap.Category == nil || *snap.Category != cat {
		return &ValidationOutcome{Decision: coupon.NotUsable(coupon.ReasonCategoryMismatch), Coupon: snap}, nil
	}

	h, ok := q.registry.Lookup(cat)
	if ok && h.ValidateForUse != nil {
		res, err := h.ValidateForUse(ctx, snap, redeemerID, metadata)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			reason := res.Reason
			if reason == "" {
				reason = coupon.ReasonHandlerRejected
			}
			return &ValidationOutcome{Decision: coupon.NotUsable(reason), Coupon: snap}, nil
		}
	}

	outcome := &ValidationOutcome{Decision: coupon.Usable(), Coupon: snap}
	if ok && h.ResolveEffect != nil {
		effect, err := h.ResolveEffect(ctx, snap, redeemerID, metadata)
		if err != nil {
			return nil, err
		}
		outcome.Effect = effect
	}
	return outcome, nil
}

func (q *couponQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, filters shared.OwnerFilters) ([]coupon.Coupon, error) {
	return q.reader.ListByOwner(ctx, ownerID, filters)
}

func (q *couponQueriesImpl) CategoryLabels() map[string]string {
	return q.registry.Labels()
}

func (q *couponQueriesImpl) Categories() []string {
	return q.registry.Categories()
}

func (q *couponQueriesImpl) lookupAndEvaluate(ctx context.Context, rawCode string, redeemerID *uuid.UUID) (*coupon.Coupon, coupon.Decision, error) {
	code, err := coupon.NewCode(rawCode)
	if err != nil {
		return nil, coupon.NotUsable(coupon.ReasonNotFound), nil
	}

	snap, err := q.reader.FindByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, coupon.NotUsable(coupon.ReasonNotFound), nil
		}
		return nil, coupon.Decision{}, err
	}

	dec, err := coupon.Evaluate(snap, q.clock.Now(), redeemerID, func() (int64, error) {
		return q.reader.CountUsagesByRedeemer(ctx, snap.ID, *redeemerID)
	})
	if err != nil {
		return nil, coupon.Decision{}, err
	}
	return snap, dec, nil
}
