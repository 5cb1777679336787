package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coupon-engine/internal/handler/api"
	"coupon-engine/internal/handler/middleware"
	"coupon-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	couponHandler *api.CouponHandler,
	ownerHandler *api.OwnerHandler,
	adminHandler *api.AdminCouponHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, couponHandler, ownerHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	couponHandler *api.CouponHandler,
	ownerHandler *api.OwnerHandler,
	adminHandler *api.AdminCouponHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/coupon-categories", couponHandler.ListCategories)

		coupons := apiGroup.Group("/coupons")
		// Identity is optional on the redemption surface: anonymous
		// redemption is legal for coupons without per-user caps.
		coupons.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(coupons, []route{
				{Method: http.MethodGet, Path: "/:code/usability", Handler: couponHandler.CheckUsability},
				{Method: http.MethodPost, Path: "/validate", Handler: couponHandler.Validate},
				{Method: http.MethodPost, Path: "/redeem", Handler: couponHandler.Redeem},
				{Method: http.MethodPost, Path: "/redeem-with-effect", Handler: couponHandler.RedeemWithEffect},
			})
		}

		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/coupons", Handler: ownerHandler.ListMyCoupons},
				{Method: http.MethodGet, Path: "/invite-code", Handler: ownerHandler.GetInviteCode},
			})
		}

		admin := apiGroup.Group("/admin/coupons")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "", Handler: adminHandler.CreateCoupon},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: adminHandler.UpdateStatus},
				{Method: http.MethodDelete, Path: "/:id", Handler: adminHandler.DeleteCoupon},
				{Method: http.MethodPost, Path: "/:id/restore", Handler: adminHandler.RestoreCoupon},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
