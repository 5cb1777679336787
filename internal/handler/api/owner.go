package api

import (
	"net/http"

	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/internal/handler/middleware"
	"coupon-engine/internal/usecase/commands"
	"coupon-engine/internal/usecase/queries"
	"coupon-engine/internal/usecase/shared"

	"coupon-engine/internal/domain/coupon"

	"github.com/gin-gonic/gin"
)

// OwnerHandler serves the authenticated user's own coupons: the affiliate
// codes issued to them and their personal invite code.
type OwnerHandler struct {
	issuance commands.IssuanceCommands
	queries  queries.CouponQueries
}

func NewOwnerHandler(issuance commands.IssuanceCommands, couponQueries queries.CouponQueries) *OwnerHandler {
	return &OwnerHandler{
		issuance: issuance,
		queries:  couponQueries,
	}
}

// @Summary List my coupons
// @Description Coupons owned by the authenticated user, optionally filtered by type and status
// @Tags me
// @Produce json
// @Security BearerAuth
// @Param type query string false "Coupon type filter"
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.CouponResponse
// @Failure 401 {object} map[string]string
// @Router /me/coupons [get]
func (h *OwnerHandler) ListMyCoupons(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var filters shared.OwnerFilters
	if t := c.Query("type"); t != "" {
		typ := coupon.Type(t)
		if !typ.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon type"})
			return
		}
		filters.Type = &typ
	}
	if s := c.Query("status"); s != "" {
		status := coupon.Status(s)
		if status != coupon.StatusActive && status != coupon.StatusInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon status"})
			return
		}
		filters.Status = &status
	}

	coupons, err := h.queries.ListByOwner(c.Request.Context(), userID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.CouponResponse, len(coupons))
	for i := range coupons {
		response[i] = resdto.FromCoupon(&coupons[i])
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get my invite code
// @Description Returns the user's invite coupon, creating it on first call
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CouponResponse
// @Failure 401 {object} map[string]string
// @Router /me/invite-code [get]
func (h *OwnerHandler) GetInviteCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invite, err := h.issuance.GetOrCreateInviteCode(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCoupon(invite))
}
