package api

import (
	"context"
	"net/http"

	reqdto "coupon-engine/internal/handler/dto/request"
	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/internal/handler/middleware"
	"coupon-engine/internal/usecase/commands"
	"coupon-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	redemption commands.RedemptionCommands
	queries    queries.CouponQueries
}

func NewCouponHandler(redemption commands.RedemptionCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		redemption: redemption,
		queries:    couponQueries,
	}
}

// @Summary Check coupon usability
// @Description Check whether a coupon code could be redeemed right now
// @Tags coupons
// @Produce json
// @Param code path string true "Coupon code"
// @Success 200 {object} resdto.UsabilityResponse
// @Router /coupons/{code}/usability [get]
func (h *CouponHandler) CheckUsability(c *gin.Context) {
	result, err := h.queries.CheckUsability(c.Request.Context(), c.Param("code"), middleware.GetUserIDPtr(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromUsability(result))
}

// @Summary Validate coupon for a category
// @Description Dry-run validation a consumer domain calls before applying a coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCouponRequest true "Validation request"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} map[string]string
// @Router /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	outcome, err := h.queries.ValidateForCategory(c.Request.Context(), req.Code, req.Category, middleware.GetUserIDPtr(c), req.Metadata)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidation(outcome))
}

// @Summary Redeem a coupon
// @Description Atomically consume one use of a coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemRequest true "Redemption request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} resdto.RedeemResponse
// @Router /coupons/redeem [post]
func (h *CouponHandler) Redeem(c *gin.Context) {
	h.redeem(c, h.redemption.Redeem)
}

// @Summary Redeem a coupon with its category effect
// @Description Redeem and run the category handler's validation and effect
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemRequest true "Redemption request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} resdto.RedeemResponse
// @Router /coupons/redeem-with-effect [post]
func (h *CouponHandler) RedeemWithEffect(c *gin.Context) {
	h.redeem(c, h.redemption.RedeemWithEffect)
}

func (h *CouponHandler) redeem(c *gin.Context, fn func(ctx context.Context, code string, redeemerID *uuid.UUID, metadata map[string]any) (*commands.RedeemResult, error)) {
	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := fn(c.Request.Context(), req.Code, middleware.GetUserIDPtr(c), req.Metadata)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusOK
	if !result.Decision.Usable {
		// rejected redemptions are expected outcomes, not server errors
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resdto.FromRedeemResult(result))
}

// @Summary List coupon categories
// @Description Registered categories and their display labels
// @Tags coupons
// @Produce json
// @Success 200 {object} resdto.CategoryListResponse
// @Router /coupon-categories [get]
func (h *CouponHandler) ListCategories(c *gin.Context) {
	labels := h.queries.CategoryLabels()
	items := make([]resdto.CategoryItem, 0, len(labels))
	for _, cat := range h.queries.Categories() {
		items = append(items, resdto.CategoryItem{Category: cat, Label: labels[cat]})
	}
	c.JSON(http.StatusOK, resdto.CategoryListResponse{Categories: items})
}
