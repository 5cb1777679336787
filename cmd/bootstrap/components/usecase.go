package components

import (
	"coupon-engine/internal/pkg/clock"
	"coupon-engine/internal/pkg/config"
	"coupon-engine/internal/usecase/commands"
	"coupon-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.CouponConfig {
		return cfg.Coupon
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRedemptionCommands,
		commands.NewIssuanceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCouponQueries,
	),
)
