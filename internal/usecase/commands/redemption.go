package commands

import (
	"context"
	"log/slog"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/pkg/clock"
	"coupon-engine/internal/pkg/errs"
	"coupon-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// errRedeemRejected aborts the redemption transaction when the in-lock
// re-validation fails. It never escapes this package; callers see a
// RedeemResult with the reason and a nil error.
var errRedeemRejected = errs.New("redemption rejected")

// RedeemResult reports the outcome of a redemption attempt. Usability
// failures are values here, not errors.
type RedeemResult struct {
	Decision coupon.Decision
	Coupon   *coupon.Coupon
	Usage    *coupon.UsageEntry
	Effect   map[string]any
}

type RedemptionCommands interface {
	// Redeem runs the core redemption transaction: evaluate, lock, increment,
	// append ledger row.
	Redeem(ctx context.Context, code string, redeemerID *uuid.UUID, metadata map[string]any) (*RedeemResult, error)
	// RedeemWithEffect additionally runs the registered category handler:
	// its ValidateForUse joins both the pre-lock and in-lock evaluation, and
	// its ResolveEffect/OnRedeemed run after commit, best-effort.
	RedeemWithEffect(ctx context.Context, code string, redeemerID *uuid.UUID, metadata map[string]any) (*RedeemResult, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, code string)
}

type redemptionUseCaseImpl struct {
	uow      shared.UnitOfWork
	reader   shared.CouponReader
	registry *category.Registry
	clock    clock.Clock
}

func NewRedemptionCommands(
	uow shared.UnitOfWork,
	reader shared.CouponReader,
	registry *category.Registry,
	clock clock.Clock,
) RedemptionCommands {
	return &redemptionUseCaseImpl{
		uow:      uow,
		reader:   reader,
		registry: registry,
		clock:    clock,
	}
}

func (u *redemptionUseCaseImpl) Redeem(ctx context.Context, code string, redeemerID *uuid.UUID, metadata map[string]any) (*RedeemResult, error) {
	return u.redeem(ctx, code, redeemerID, metadata, false)
}

func (u *redemptionUseCaseImpl) RedeemWithEffect(ctx context.Context, code string, redeemerID *uuid.UUID, metadata map[string]any) (*RedeemResult, error) {
	result, err := u.redeem(ctx, code, redeemerID, metadata, true)
	if err != nil || !result.Decision.Usable {
		return result, err
	}

	u.applyHandlerEffects(ctx, result, redeemerID, metadata)
	return result, nil
}

func (u *redemptionUseCaseImpl) redeem(ctx context.Context, rawCode string, redeemerID *uuid.UUID, metadata map[string]any, withHandlers bool) (*RedeemResult, error) {
	code, err := coupon.NewCode(rawCode)
	if err != nil {
		// a code that can't exist is indistinguishable from one that doesn't
		return &RedeemResult{Decision: coupon.NotUsable(coupon.ReasonNotFound)}, nil
	}

	// Fast fail without opening a transaction: the common "already
	// exhausted" case should not cost a row lock.
	snap, err := u.reader.FindByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &RedeemResult{Decision: coupon.NotUsable(coupon.ReasonNotFound)}, nil
		}
		return nil, err
	}

	dec, err := u.evaluateAll(ctx, snap, redeemerID, metadata, withHandlers, func() (int64, error) {
		return u.reader.CountUsagesByRedeemer(ctx, snap.ID, *redeemerID)
	})
	if err != nil {
		return nil, err
	}
	if !dec.Usable {
		return &RedeemResult{Decision: dec, Coupon: snap}, nil
	}

	result := &RedeemResult{}
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock serializes every concurrent redemption of this
		// coupon. The per-redeemer cap is a ledger count, not a stored
		// counter, and is only safe because this same lock orders the
		// count and the subsequent append.
		locked, lockErr := tx.Coupons().FindByCodeForUpdate(ctx, tx.DB(), code.String())
		if lockErr != nil {
			if infra.IsKind(lockErr, infra.KindNotFound) {
				result.Decision = coupon.NotUsable(coupon.ReasonNotFound)
				return errRedeemRejected
			}
			return lockErr
		}

		// Re-run every pre-lock check against the fresh row: another
		// transaction may have committed between the preview and the lock.
		lockedDec, evalErr := u.evaluateAll(ctx, locked, redeemerID, metadata, withHandlers, func() (int64, error) {
			return tx.Usages().CountByRedeemer(ctx, tx.DB(), locked.ID, *redeemerID)
		})
		if evalErr != nil {
			return evalErr
		}
		if !lockedDec.Usable {
			result.Decision = lockedDec
			result.Coupon = locked
			return errRedeemRejected
		}

		newTotal, incErr := tx.Coupons().IncrementTotalUses(ctx, tx.DB(), locked.ID)
		if incErr != nil {
			return incErr
		}
		locked.CurrentTotalUses = newTotal

		entry := &coupon.UsageEntry{
			CouponID:       locked.ID,
			RedeemerUserID: redeemerID,
			Metadata:       coupon.SnapshotMetadata(locked, newTotal, metadata),
		}
		saved, appendErr := tx.Usages().Append(ctx, tx.DB(), entry)
		if appendErr != nil {
			return appendErr
		}

		result.Decision = coupon.Usable()
		result.Coupon = locked
		result.Usage = saved
		return nil
	})
	if err != nil {
		if errs.Is(err, errRedeemRejected) {
			return result, nil
		}
		return nil, err
	}

	if inv, ok := u.reader.(cacheInvalidator); ok {
		inv.Invalidate(ctx, result.Coupon.Code)
	}
	return result, nil
}

// evaluateAll is the single evaluation path used both before and inside the
// lock so preview and commit can never drift apart. With handlers enabled it
// appends the coupon's own category validation after the core checks.
func (u *redemptionUseCaseImpl) evaluateAll(
	ctx context.Context,
	c *coupon.Coupon,
	redeemerID *uuid.UUID,
	metadata map[string]any,
	withHandlers bool,
	priorUses coupon.UsageCount,
) (coupon.Decision, error) {
	dec, err := coupon.Evaluate(c, u.clock.Now(), redeemerID, priorUses)
	if err != nil || !dec.Usable {
		return dec, err
	}

	if !withHandlers || c.Category == nil {
		return dec, nil
	}

	h, ok := u.registry.Lookup(*c.Category)
	if !ok || h.ValidateForUse == nil {
		return dec, nil
	}

	res, err := h.ValidateForUse(ctx, c, redeemerID, metadata)
	if err != nil {
		return coupon.Decision{}, err
	}
	if !res.Valid {
		reason := res.Reason
		if reason == "" {
			reason = coupon.ReasonHandlerRejected
		}
		return coupon.NotUsable(reason), nil
	}
	return coupon.Usable(), nil
}

// applyHandlerEffects runs after commit. The redemption is durable at this
// point, so handler failures are logged and swallowed: the ledger outranks
// any handler-side effect.
func (u *redemptionUseCaseImpl) applyHandlerEffects(ctx context.Context, result *RedeemResult, redeemerID *uuid.UUID, metadata map[string]any) {
	c := result.Coupon
	if c.Category == nil {
		return
	}
	h, ok := u.registry.Lookup(*c.Category)
	if !ok {
		return
	}

	if h.ResolveEffect != nil {
		effect, err := h.ResolveEffect(ctx, c, redeemerID, metadata)
		if err != nil {
			slog.Error("effect resolution failed after committed redemption",
				"category", *c.Category, "coupon_id", c.ID, "error", err.Error())
		} else {
			result.Effect = effect
		}
	}

	if h.OnRedeemed != nil {
		if err := h.OnRedeemed(ctx, c, redeemerID, metadata, result.Usage); err != nil {
			slog.Error("post-redemption hook failed",
				"category", *c.Category, "coupon_id", c.ID, "error", err.Error())
		}
	}
}
