package api

import (
	"errors"
	"net/http"

	"coupon-engine/internal/domain/coupon"
	reqdto "coupon-engine/internal/handler/dto/request"
	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminCouponHandler struct {
	issuance commands.IssuanceCommands
}

func NewAdminCouponHandler(issuance commands.IssuanceCommands) *AdminCouponHandler {
	return &AdminCouponHandler{issuance: issuance}
}

// @Summary Create coupon
// @Description Administrative coupon creation; omit code to have one generated
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon attributes"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/coupons [post]
func (h *AdminCouponHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var ownerID *uuid.UUID
	if req.OwnerID != nil {
		id, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID format"})
			return
		}
		ownerID = &id
	}

	attrs := commands.IssueAttributes{
		Code:               req.GetCode(),
		Name:               req.Name,
		Category:           req.Category,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		MaxTotalUses:       req.MaxTotalUses,
		MaxUsesPerRedeemer: req.MaxUsesPerRedeemer,
		Settings:           req.Settings,
	}

	created, err := h.issuance.IssueCoupon(c.Request.Context(), coupon.Type(req.Type), ownerID, attrs)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCouponType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon type"})
		case errors.Is(err, coupon.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon code format"})
		case errors.Is(err, commands.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown coupon category"})
		case errors.Is(err, commands.ErrInvalidSettings):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Settings do not satisfy the category schema"})
		case errors.Is(err, commands.ErrCodeAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
		case errors.Is(err, commands.ErrCodeAllocationExhausted):
			c.JSON(http.StatusConflict, gin.H{"error": "Could not allocate a unique coupon code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCoupon(created))
}

// @Summary Update coupon status
// @Description Switch a coupon between active and inactive
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id}/status [patch]
func (h *AdminCouponHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.couponID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateCouponStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	status := coupon.Status(req.Status)
	if status != coupon.StatusActive && status != coupon.StatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon status"})
		return
	}

	h.mutate(c, func() error {
		return h.issuance.UpdateStatus(c.Request.Context(), id, status)
	})
}

// @Summary Delete coupon
// @Description Soft-delete a coupon; its usage history is retained
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id} [delete]
func (h *AdminCouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := h.couponID(c)
	if !ok {
		return
	}
	h.mutate(c, func() error {
		return h.issuance.SoftDelete(c.Request.Context(), id)
	})
}

// @Summary Restore coupon
// @Description Undo a soft delete
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/coupons/{id}/restore [post]
func (h *AdminCouponHandler) RestoreCoupon(c *gin.Context) {
	id, ok := h.couponID(c)
	if !ok {
		return
	}
	h.mutate(c, func() error {
		return h.issuance.Restore(c.Request.Context(), id)
	})
}

func (h *AdminCouponHandler) couponID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *AdminCouponHandler) mutate(c *gin.Context, fn func() error) {
	if err := fn(); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
