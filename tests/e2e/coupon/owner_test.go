//go:build e2e

package coupon_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"coupon-engine/internal/domain/coupon"
	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/tests/common/authtest"
	"coupon-engine/tests/common/builder"
	"coupon-engine/tests/common/dbtest"
	"coupon-engine/tests/common/httptest"
	"coupon-engine/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const myCouponsURL = "/api/me/coupons"

type OwnerSuite struct {
	e2e.SharedSuite
}

func (s *OwnerSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOwnerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OwnerSuite))
}

func (s *OwnerSuite) TestListMyCoupons() {
	s.Run("Normal case: only the caller's coupons are listed", func() {
		t := s.T()

		ownerID := uuid.New()
		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("MINE0001").
			WithName("アフィリエイトコード").
			WithType(coupon.TypeAffiliate).
			WithOwner(ownerID).
			Build())
		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("THEIRS01").
			WithOwner(uuid.New()).
			Build())

		token := authtest.Token(t, s.Config.JWT, ownerID, "user")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, myCouponsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var listed []resdto.CouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		require.Len(t, listed, 1)

		expected := resdto.CouponResponse{
			Code:    "MINE0001",
			Name:    "アフィリエイトコード",
			Type:    string(coupon.TypeAffiliate),
			Status:  string(coupon.StatusActive),
			OwnerID: &ownerID,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.CouponResponse{}, "ID", "Settings", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, listed[0], opts...); diff != "" {
			t.Errorf("Coupon response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: filters narrow the listing", func() {
		t := s.T()

		ownerID := uuid.New()
		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("ACTIVE01").
			WithType(coupon.TypeAffiliate).
			WithOwner(ownerID).
			Build())
		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("PAUSED01").
			WithType(coupon.TypeAffiliate).
			WithStatus(coupon.StatusInactive).
			WithOwner(ownerID).
			Build())

		token := authtest.Token(t, s.Config.JWT, ownerID, "user")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			myCouponsURL+"?type=affiliate&status=active", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var listed []resdto.CouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		require.Len(t, listed, 1)
		require.Equal(t, "ACTIVE01", listed[0].Code)
	})

	s.Run("Error case: anonymous access is refused", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, myCouponsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
