//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"coupon-engine/internal/domain/coupon"
	"coupon-engine/internal/handler/api"
	reqdto "coupon-engine/internal/handler/dto/request"
	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/internal/infra"
	"coupon-engine/internal/usecase/commands"
	"coupon-engine/tests/common/builder"
	"coupon-engine/tests/common/httptest"
	"coupon-engine/tests/common/testutil"
	commandsmock "coupon-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminCouponHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockIssuance *commandsmock.MockIssuanceCommands
	handler      *api.AdminCouponHandler
}

func (s *AdminCouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockIssuance = commandsmock.NewMockIssuanceCommands(s.mockCtrl)
	s.handler = api.NewAdminCouponHandler(s.mockIssuance)

	// Mock authentication middleware for testing
	adminAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", "admin")
		c.Next()
	}

	// Setup routes
	s.router.POST("/admin/coupons", adminAuth, s.handler.CreateCoupon)
	s.router.PATCH("/admin/coupons/:id/status", adminAuth, s.handler.UpdateStatus)
	s.router.DELETE("/admin/coupons/:id", adminAuth, s.handler.DeleteCoupon)
	s.router.POST("/admin/coupons/:id/restore", adminAuth, s.handler.RestoreCoupon)
}

func (s *AdminCouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminCouponHandlerTestSuite))
}

// ================================================================================
// TestCreateCoupon
// ================================================================================

func (s *AdminCouponHandlerTestSuite) TestCreateCoupon() {
	url := "/admin/coupons"
	reqBody := reqdto.CreateCouponRequest{
		Name: "サマーキャンペーン",
		Type: "official",
	}

	s.Run("success: 201 Created with the stored coupon", func() {
		created := builder.NewCouponBuilder().Build()
		s.mockIssuance.EXPECT().
			IssueCoupon(gomock.Any(), coupon.TypeOfficial, nil, gomock.Any()).
			Return(created, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "admin-token")

		var body resdto.CouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.Code, body.Code)
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil)},
			{name: "missing field: type (required)", mutate: testutil.Field("type", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "admin-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed owner id", func() {
		bad := "not-a-uuid"
		body := reqBody
		body.OwnerID = &bad
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid owner ID format")
	})

	s.Run("error: usecase failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "invalid type", err: commands.ErrInvalidCouponType, expectCode: http.StatusBadRequest},
			{name: "invalid code format", err: coupon.ErrInvalidCode, expectCode: http.StatusBadRequest},
			{name: "unknown category", err: commands.ErrUnknownCategory, expectCode: http.StatusBadRequest},
			{name: "invalid settings", err: commands.ErrInvalidSettings, expectCode: http.StatusBadRequest},
			{name: "code taken", err: commands.ErrCodeAlreadyExists, expectCode: http.StatusConflict},
			{name: "allocation exhausted", err: commands.ErrCodeAllocationExhausted, expectCode: http.StatusConflict},
			{name: "unexpected failure", err: errors.New("db unavailable"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockIssuance.EXPECT().
					IssueCoupon(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "admin-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *AdminCouponHandlerTestSuite) TestUpdateStatus() {
	id := uuid.New()
	url := "/admin/coupons/" + id.String() + "/status"

	s.Run("success: 204 No Content", func() {
		s.mockIssuance.EXPECT().
			UpdateStatus(gomock.Any(), id, coupon.StatusInactive).
			Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			reqdto.UpdateCouponStatusRequest{Status: "inactive"}, "admin-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request on unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			reqdto.UpdateCouponStatusRequest{Status: "paused"}, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid coupon status")
	})

	s.Run("error: 404 Not Found for a missing coupon", func() {
		s.mockIssuance.EXPECT().
			UpdateStatus(gomock.Any(), id, coupon.StatusActive).
			Return(infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			reqdto.UpdateCouponStatusRequest{Status: "active"}, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/coupons/abc/status",
			reqdto.UpdateCouponStatusRequest{Status: "active"}, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid coupon ID format")
	})
}

// ================================================================================
// TestDeleteAndRestore
// ================================================================================

func (s *AdminCouponHandlerTestSuite) TestDeleteAndRestore() {
	id := uuid.New()

	s.Run("success: delete returns 204", func() {
		s.mockIssuance.EXPECT().SoftDelete(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/coupons/"+id.String(), nil, "admin-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: restore returns 204", func() {
		s.mockIssuance.EXPECT().Restore(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/coupons/"+id.String()+"/restore", nil, "admin-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: restore of an unknown coupon returns 404", func() {
		s.mockIssuance.EXPECT().Restore(gomock.Any(), id).
			Return(infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/coupons/"+id.String()+"/restore", nil, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}
