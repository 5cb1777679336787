package bootstrap

import (
	"coupon-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.DomainModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
