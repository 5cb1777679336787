package components

import (
	"coupon-engine/internal/domain/category"
	"coupon-engine/internal/domain/invite"
	"coupon-engine/internal/domain/purchase"

	"go.uber.org/fx"
)

// DomainModule provides the category registry and wires in every consumer
// domain shipped with the engine. Registration order does not matter; each
// domain owns a distinct category.
var DomainModule = fx.Module("domains",
	fx.Provide(
		category.NewRegistry,
	),
	fx.Invoke(
		registerCategoryHandlers,
	),
)

func registerCategoryHandlers(reg *category.Registry) error {
	if err := purchase.Register(reg); err != nil {
		return err
	}
	// No reward granter wired yet: grants are logged until a points service
	// exists to credit them against.
	return invite.Register(reg, nil)
}
