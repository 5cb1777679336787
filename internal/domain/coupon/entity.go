package coupon

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a row snapshot of the redeemable unit. Fields mirror the
// coupons table; the struct is treated as read-only outside the
// redemption transaction (only CurrentTotalUses ever changes, and only
// there).
type Coupon struct {
	ID                 uuid.UUID
	Code               string
	Name               string
	Type               Type
	Status             Status
	Category           *string
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	MaxTotalUses       *int32
	MaxUsesPerRedeemer *int32
	CurrentTotalUses   int32
	OwnerID            *uuid.UUID
	Settings           map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// UsageCount lazily supplies the redeemer's historical redemption count for
// this coupon. It is only invoked when a per-redeemer cap is configured, so
// the evaluator performs at most one ledger query.
type UsageCount func() (int64, error)

// Evaluate decides whether the coupon can be redeemed right now.
//
// Checks run in a fixed order and short-circuit on the first failure so that
// the reported reason is deterministic. Window boundaries are inclusive:
// now == ValidFrom and now == ValidUntil are both usable.
func Evaluate(c *Coupon, now time.Time, redeemerID *uuid.UUID, priorUses UsageCount) (Decision, error) {
	if c.Status != StatusActive {
		return NotUsable(ReasonInactive), nil
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return NotUsable(ReasonNotStarted), nil
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return NotUsable(ReasonExpired), nil
	}
	if c.MaxTotalUses != nil && c.CurrentTotalUses >= *c.MaxTotalUses {
		return NotUsable(ReasonMaxTotalReached), nil
	}
	if c.MaxUsesPerRedeemer != nil {
		if redeemerID == nil {
			return NotUsable(ReasonUserIDRequired), nil
		}
		used, err := priorUses()
		if err != nil {
			return Decision{}, err
		}
		if used >= int64(*c.MaxUsesPerRedeemer) {
			return NotUsable(ReasonMaxPerUserReached), nil
		}
	}
	return Usable(), nil
}

// NoUsage is a UsageCount for coupons known to have no per-redeemer cap.
func NoUsage() (int64, error) { return 0, nil }

// UsageEntry is one immutable ledger row: exactly one per successful
// redemption, never updated or deleted.
type UsageEntry struct {
	ID             uuid.UUID
	CouponID       uuid.UUID
	RedeemerUserID *uuid.UUID
	Metadata       map[string]any
	CreatedAt      time.Time
}

// SnapshotMetadata builds the ledger metadata for a redemption: the coupon's
// identity fields frozen at this moment plus the counter value after the
// increment, merged with caller-supplied context. Snapshot keys win over
// caller keys on collision so the ledger can always be trusted for audits.
func SnapshotMetadata(c *Coupon, newTotalUses int32, callerMeta map[string]any) map[string]any {
	merged := make(map[string]any, len(callerMeta)+6)
	for k, v := range callerMeta {
		merged[k] = v
	}
	merged["code"] = c.Code
	merged["type"] = string(c.Type)
	merged["name"] = c.Name
	merged["current_total_uses"] = newTotalUses
	if c.OwnerID != nil {
		merged["owner_id"] = c.OwnerID.String()
	}
	if c.Category != nil {
		merged["category"] = *c.Category
	}
	return merged
}
