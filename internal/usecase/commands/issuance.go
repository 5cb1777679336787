package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/pkg/codegen"
	"coupon-engine/internal/pkg/config"
	"coupon-engine/internal/pkg/errs"
	"coupon-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	// ErrCodeAllocationExhausted: the generator kept hitting taken codes.
	// With a 31-character alphabet and 8-character codes this signals a
	// misconfigured code length, not bad luck.
	ErrCodeAllocationExhausted = errs.New("could not allocate a unique coupon code")
	ErrCodeAlreadyExists       = errs.New("coupon code already exists")
	ErrUnknownCategory         = errs.New("no handler registered for category")
	ErrInvalidSettings         = errs.New("coupon settings do not satisfy the category schema")
	ErrInvalidCouponType       = errs.New("invalid coupon type")
)

// IssueAttributes carries everything but the identity of the coupon being
// issued. An empty Code requests generation; an explicit one is taken as-is
// (admin path) and must be free.
type IssueAttributes struct {
	Code               string
	Name               string
	Category           *string
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	MaxTotalUses       *int32
	MaxUsesPerRedeemer *int32
	Settings           map[string]any
}

type IssuanceCommands interface {
	// IssueCoupon is the administrative creation path: any type, optional
	// owner, optional explicit code.
	IssueCoupon(ctx context.Context, typ coupon.Type, ownerID *uuid.UUID, attrs IssueAttributes) (*coupon.Coupon, error)
	// IssueForOwner mints an owner-bound coupon with a generated code,
	// retrying on collisions.
	IssueForOwner(ctx context.Context, ownerID uuid.UUID, typ coupon.Type, attrs IssueAttributes) (*coupon.Coupon, error)
	// GetOrCreateInviteCode returns the owner's single active invite coupon,
	// creating it on first call. Concurrent first calls converge on one row.
	GetOrCreateInviteCode(ctx context.Context, ownerID uuid.UUID) (*coupon.Coupon, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status coupon.Status) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type issuanceUseCaseImpl struct {
	uow      shared.UnitOfWork
	registry *category.Registry
	cfg      config.CouponConfig
}

func NewIssuanceCommands(uow shared.UnitOfWork, registry *category.Registry, cfg config.CouponConfig) IssuanceCommands {
	return &issuanceUseCaseImpl{uow: uow, registry: registry, cfg: cfg}
}

func (u *issuanceUseCaseImpl) IssueCoupon(ctx context.Context, typ coupon.Type, ownerID *uuid.UUID, attrs IssueAttributes) (*coupon.Coupon, error) {
	if !typ.Valid() {
		return nil, errs.Mark(errs.Newf("unknown coupon type %q", typ), ErrInvalidCouponType)
	}
	if err := u.validateSettings(attrs.Category, attrs.Settings); err != nil {
		return nil, err
	}

	var issued *coupon.Coupon
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := u.insertCoupon(ctx, tx, typ, ownerID, attrs)
		if err != nil {
			return err
		}
		issued = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (u *issuanceUseCaseImpl) IssueForOwner(ctx context.Context, ownerID uuid.UUID, typ coupon.Type, attrs IssueAttributes) (*coupon.Coupon, error) {
	attrs.Code = ""
	return u.IssueCoupon(ctx, typ, &ownerID, attrs)
}

func (u *issuanceUseCaseImpl) GetOrCreateInviteCode(ctx context.Context, ownerID uuid.UUID) (*coupon.Coupon, error) {
	result, err := u.getOrCreateInviteOnce(ctx, ownerID)
	if err != nil && infra.IsKind(err, infra.KindDuplicateKey) {
		// Lost the one-invite-per-owner race; the winner's row is committed
		// now, so a second pass finds it.
		slog.Info("invite creation raced, re-reading winner", "owner_id", ownerID)
		return u.getOrCreateInviteOnce(ctx, ownerID)
	}
	return result, err
}

func (u *issuanceUseCaseImpl) getOrCreateInviteOnce(ctx context.Context, ownerID uuid.UUID) (*coupon.Coupon, error) {
	var result *coupon.Coupon
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Coupons().FindActiveByOwnerForUpdate(ctx, tx.DB(), ownerID, coupon.TypeInvite)
		if err == nil {
			result = existing
			return nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		created, err := u.insertCoupon(ctx, tx, coupon.TypeInvite, &ownerID, defaultInviteAttributes())
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *issuanceUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status coupon.Status) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().UpdateStatus(ctx, tx.DB(), id, status)
	})
}

func (u *issuanceUseCaseImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().SoftDelete(ctx, tx.DB(), id)
	})
}

func (u *issuanceUseCaseImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().Restore(ctx, tx.DB(), id)
	})
}

// insertCoupon builds and inserts the row. Generated codes retry on
// collision inside the same transaction; explicit codes fail fast.
func (u *issuanceUseCaseImpl) insertCoupon(ctx context.Context, tx shared.Tx, typ coupon.Type, ownerID *uuid.UUID, attrs IssueAttributes) (*coupon.Coupon, error) {
	base := &coupon.Coupon{
		Name:               attrs.Name,
		Type:               typ,
		Status:             coupon.StatusActive,
		Category:           attrs.Category,
		ValidFrom:          attrs.ValidFrom,
		ValidUntil:         attrs.ValidUntil,
		MaxTotalUses:       attrs.MaxTotalUses,
		MaxUsesPerRedeemer: attrs.MaxUsesPerRedeemer,
		OwnerID:            ownerID,
		Settings:           attrs.Settings,
	}

	if attrs.Code != "" {
		code, err := coupon.NewCode(attrs.Code)
		if err != nil {
			return nil, err
		}
		base.Code = code.String()
		created, err := tx.Coupons().Create(ctx, tx.DB(), base)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateCode) {
				return nil, errs.Mark(err, ErrCodeAlreadyExists)
			}
			return nil, err
		}
		return created, nil
	}

	for attempt := 1; attempt <= u.cfg.IssueMaxAttempts; attempt++ {
		base.Code = codegen.Generate(u.cfg.CodeLength)
		created, err := tx.Coupons().Create(ctx, tx.DB(), base)
		if err == nil {
			return created, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateCode) {
			return nil, err
		}
		slog.Warn("coupon code collision, regenerating",
			"attempt", attempt, "max_attempts", u.cfg.IssueMaxAttempts)
	}
	return nil, ErrCodeAllocationExhausted
}

func (u *issuanceUseCaseImpl) validateSettings(cat *string, settings map[string]any) error {
	if cat == nil {
		return nil
	}
	h, ok := u.registry.Lookup(*cat)
	if !ok {
		return errs.Mark(errs.Newf("unknown category %q", *cat), ErrUnknownCategory)
	}
	for _, field := range h.SettingsFields {
		if !field.Required {
			continue
		}
		if _, present := settings[field.Key]; !present {
			return errs.Mark(errs.Newf("missing required setting %q", field.Key), ErrInvalidSettings)
		}
	}
	return nil
}

func defaultInviteAttributes() IssueAttributes {
	cat := category.InviteReward
	one := int32(1)
	return IssueAttributes{
		Name:               "招待コード",
		Category:           &cat,
		MaxUsesPerRedeemer: &one,
		Settings:           map[string]any{},
	}
}
