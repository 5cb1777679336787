package components

import (
	"coupon-engine/internal/handler"
	"coupon-engine/internal/handler/api"
	"coupon-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCouponHandler,
		api.NewOwnerHandler,
		api.NewAdminCouponHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
