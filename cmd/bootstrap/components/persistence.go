package components

import (
	"context"

	"coupon-engine/internal/infra/cache"
	"coupon-engine/internal/infra/db"
	"coupon-engine/internal/infra/readstore"
	"coupon-engine/internal/infra/uow"
	"coupon-engine/internal/pkg/config"
	"coupon-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		NewCouponReader,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCouponReader builds the unlocked read path, wrapped in a redis snapshot
// cache when one is configured.
func NewCouponReader(lc fx.Lifecycle, cfg config.Config, dbtx db.DBTX) shared.CouponReader {
	reader := readstore.NewCouponReadStore(dbtx)
	if !cfg.Redis.Enabled() {
		return reader
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return cache.NewCachedCouponReader(reader, rdb, cfg.Redis.SnapTTL)
}
