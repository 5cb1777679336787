//go:build e2e

package coupon_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"coupon-engine/internal/domain/coupon"
	reqdto "coupon-engine/internal/handler/dto/request"
	resdto "coupon-engine/internal/handler/dto/response"
	"coupon-engine/tests/common/authtest"
	"coupon-engine/tests/common/builder"
	"coupon-engine/tests/common/dbtest"
	"coupon-engine/tests/common/httptest"
	"coupon-engine/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	redeemURL           = "/api/coupons/redeem"
	redeemWithEffectURL = "/api/coupons/redeem-with-effect"
	validateURL         = "/api/coupons/validate"
	inviteCodeURL       = "/api/me/invite-code"
)

type CouponSuite struct {
	e2e.SharedSuite
}

func (s *CouponSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCouponSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CouponSuite))
}

// concurrentRedeem fires n parallel redemption requests for one code and
// returns the observed status codes. Assertions stay on the test goroutine.
func (s *CouponSuite) concurrentRedeem(n int, code, token string) []int {
	results := make([]int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			body, _ := json.Marshal(reqdto.RedeemRequest{Code: code})
			req := nethttptest.NewRequest(http.MethodPost, redeemURL, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := nethttptest.NewRecorder()
			s.Router.ServeHTTP(w, req)
			results[idx] = w.Code
		}(i)
	}
	wg.Wait()
	return results
}

func countStatus(results []int, status int) int {
	n := 0
	for _, code := range results {
		if code == status {
			n++
		}
	}
	return n
}

// =============================================================================
// TestRedeem - redemption API tests
// =============================================================================

func (s *CouponSuite) TestRedeem() {
	s.Run("Normal case: redemption writes the ledger and bumps the counter", func() {
		t := s.T()

		couponID := dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("WELCOME1").
			WithMaxTotalUses(100).
			Build())
		token := authtest.Token(t, s.Config.JWT, uuid.New(), "user")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: "WELCOME1", Metadata: map[string]any{"order_id": "ord-1"}}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.True(t, body.Redeemed)
		require.NotNil(t, body.Usage)
		require.Equal(t, "WELCOME1", body.Usage.Metadata["code"], "スナップショットにコードが残ること")
		require.Equal(t, "ord-1", body.Usage.Metadata["order_id"])

		require.Equal(t, int64(1), dbtest.CountUsages(t, s.DB, couponID))
		require.Equal(t, int32(1), dbtest.CurrentTotalUses(t, s.DB, couponID))
	})

	s.Run("Normal case: anonymous redemption works without per-user caps", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("OPENDOOR").Build())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: "OPENDOOR"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown code is rejected with not_found", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: "NOSUCH99"}, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.False(t, body.Redeemed)
		require.Equal(t, string(coupon.ReasonNotFound), body.Reason)
	})

	s.Run("Error case: per-user cap requires an identity", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("ONCEEACH").
			WithMaxUsesPerRedeemer(1).
			Build())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: "ONCEEACH"}, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, string(coupon.ReasonUserIDRequired), body.Reason)
	})
}

// =============================================================================
// TestConcurrentRedemption - caps must hold under parallel load
// =============================================================================

func (s *CouponSuite) TestConcurrentRedemption() {
	s.Run("Total cap: exactly max_total_uses redemptions succeed", func() {
		t := s.T()

		couponID := dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("LIMITED5").
			WithMaxTotalUses(5).
			Build())

		results := s.concurrentRedeem(20, "LIMITED5", "")

		require.Equal(t, 5, countStatus(results, http.StatusOK), "成功はちょうど上限回数")
		require.Equal(t, 15, countStatus(results, http.StatusUnprocessableEntity))
		require.Equal(t, int32(5), dbtest.CurrentTotalUses(t, s.DB, couponID))
		// The ledger and the counter must agree
		require.Equal(t, int64(5), dbtest.CountUsages(t, s.DB, couponID))
	})

	s.Run("Per-user cap: one user cannot exceed their quota in parallel", func() {
		t := s.T()

		couponID := dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("PERUSER1").
			WithMaxUsesPerRedeemer(1).
			Build())
		token := authtest.Token(t, s.Config.JWT, uuid.New(), "user")

		results := s.concurrentRedeem(10, "PERUSER1", token)
		require.Equal(t, 1, countStatus(results, http.StatusOK))
		require.Equal(t, 9, countStatus(results, http.StatusUnprocessableEntity))

		// A different user is unaffected by the first user's quota
		otherToken := authtest.Token(t, s.Config.JWT, uuid.New(), "user")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: "PERUSER1"}, otherToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.Equal(t, int64(2), dbtest.CountUsages(t, s.DB, couponID))
	})
}

// =============================================================================
// TestRedeemWithEffect - category handlers on the redemption path
// =============================================================================

func (s *CouponSuite) TestRedeemWithEffect() {
	discount := func() *coupon.Coupon {
		return builder.NewCouponBuilder().
			WithCode("DISCOUNT10").
			WithCategory("purchase_discount").
			WithSettings(map[string]any{
				"discount_percent":   float64(10),
				"min_payment_amount": float64(3000),
			}).
			Build()
	}

	s.Run("Normal case: resolved effect is returned with the redemption", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, discount())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemWithEffectURL,
			reqdto.RedeemRequest{
				Code:     "DISCOUNT10",
				Metadata: map[string]any{"payment_amount": float64(4000)},
			}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.True(t, body.Redeemed)
		require.Equal(t, float64(400), body.Effect["discount_amount"])
	})

	s.Run("Error case: handler veto leaves no trace in the ledger", func() {
		t := s.T()

		couponID := dbtest.CreateTestCoupon(t, s.DB, discount())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemWithEffectURL,
			reqdto.RedeemRequest{
				Code:     "DISCOUNT10",
				Metadata: map[string]any{"payment_amount": float64(1000)},
			}, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "payment_below_minimum", body.Reason)
		require.Equal(t, int64(0), dbtest.CountUsages(t, s.DB, couponID))
		require.Equal(t, int32(0), dbtest.CurrentTotalUses(t, s.DB, couponID))
	})

	s.Run("Normal case: plain redeem ignores the category handler", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, discount())

		// Same below-minimum metadata succeeds on the plain endpoint
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{
				Code:     "DISCOUNT10",
				Metadata: map[string]any{"payment_amount": float64(1000)},
			}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestValidate - category-aware dry run
// =============================================================================

func (s *CouponSuite) TestValidate() {
	s.Run("Normal case: effect preview without consuming a use", func() {
		t := s.T()

		couponID := dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().
			WithCode("PREVIEW10").
			WithCategory("purchase_discount").
			WithSettings(map[string]any{"discount_percent": float64(10)}).
			Build())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL,
			reqdto.ValidateCouponRequest{
				Code:     "PREVIEW10",
				Category: "purchase_discount",
				Metadata: map[string]any{"payment_amount": float64(2000)},
			}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body resdto.ValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.True(t, body.Valid)
		require.Equal(t, float64(200), body.Effect["discount_amount"])
		require.Equal(t, int64(0), dbtest.CountUsages(t, s.DB, couponID), "検証ではレジャーに書かないこと")
	})

	s.Run("Error case: category mismatch", func() {
		t := s.T()

		dbtest.CreateTestCoupon(t, s.DB, builder.NewCouponBuilder().WithCode("PLAIN123").Build())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL,
			reqdto.ValidateCouponRequest{Code: "PLAIN123", Category: "purchase_discount"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var body resdto.ValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.False(t, body.Valid)
		require.Equal(t, string(coupon.ReasonCategoryMismatch), body.Reason)
	})
}

// =============================================================================
// TestInviteCode - get-or-create invite flow
// =============================================================================

func (s *CouponSuite) TestInviteCode() {
	s.Run("Normal case: concurrent first calls converge on one coupon", func() {
		t := s.T()

		token := authtest.Token(t, s.Config.JWT, uuid.New(), "user")

		const n = 8
		codes := make([]string, n)
		statuses := make([]int, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				req := nethttptest.NewRequest(http.MethodGet, inviteCodeURL, nil)
				req.Header.Set("Authorization", "Bearer "+token)
				w := nethttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				statuses[idx] = w.Code
				var body resdto.CouponResponse
				if w.Code == http.StatusOK {
					_ = json.Unmarshal(w.Body.Bytes(), &body)
					codes[idx] = body.Code
				}
			}(i)
		}
		wg.Wait()

		for i := range n {
			require.Equal(t, http.StatusOK, statuses[i])
			require.Equal(t, codes[0], codes[i], "全リクエストが同じ招待コードを受け取ること")
		}

		var count int
		err := s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM coupons WHERE type = 'invite' AND deleted_at IS NULL").Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	s.Run("Error case: the owner cannot redeem their own invite", func() {
		t := s.T()

		ownerID := uuid.New()
		ownerToken := authtest.Token(t, s.Config.JWT, ownerID, "user")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, inviteCodeURL, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var invite resdto.CouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invite))

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemWithEffectURL,
			reqdto.RedeemRequest{Code: invite.Code}, ownerToken)
		require.Equal(t, http.StatusUnprocessableEntity, rw.Code)

		var body resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
		require.Equal(t, "self_invite", body.Reason)

		// A friend can use it once
		friendToken := authtest.Token(t, s.Config.JWT, uuid.New(), "user")
		fw := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemWithEffectURL,
			reqdto.RedeemRequest{Code: invite.Code}, friendToken)
		require.Equal(t, http.StatusOK, fw.Code, fw.Body.String())

		// ...and only once
		again := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemWithEffectURL,
			reqdto.RedeemRequest{Code: invite.Code}, friendToken)
		require.Equal(t, http.StatusUnprocessableEntity, again.Code)
	})
}

// =============================================================================
// TestAdminLifecycle - issue, deactivate, delete, restore
// =============================================================================

func (s *CouponSuite) TestAdminLifecycle() {
	s.Run("Normal case: issued coupon lives through status changes", func() {
		t := s.T()

		adminToken := authtest.Token(t, s.Config.JWT, uuid.New(), "admin")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/coupons",
			reqdto.CreateCouponRequest{Name: "年末セール", Type: "official"}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.CouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Len(t, created.Code, 8, "コードは自動採番されること")

		// Deactivate, redemption is refused
		pw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			"/api/admin/coupons/"+created.ID.String()+"/status",
			reqdto.UpdateCouponStatusRequest{Status: "inactive"}, adminToken)
		require.Equal(t, http.StatusNoContent, pw.Code)

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, redeemURL,
			reqdto.RedeemRequest{Code: created.Code}, "")
		require.Equal(t, http.StatusUnprocessableEntity, rw.Code)
		var rejected resdto.RedeemResponse
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &rejected))
		require.Equal(t, string(coupon.ReasonInactive), rejected.Reason)

		// Soft delete hides the code entirely
		dw := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			"/api/admin/coupons/"+created.ID.String(), nil, adminToken)
		require.Equal(t, http.StatusNoContent, dw.Code)

		uw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/coupons/"+created.Code+"/usability", nil, "")
		require.Equal(t, http.StatusOK, uw.Code)
		var usability resdto.UsabilityResponse
		require.NoError(t, json.Unmarshal(uw.Body.Bytes(), &usability))
		require.Equal(t, string(coupon.ReasonNotFound), usability.Reason)

		// Restore brings it back, still inactive
		sw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/admin/coupons/"+created.ID.String()+"/restore", nil, adminToken)
		require.Equal(t, http.StatusNoContent, sw.Code)

		uw2 := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/coupons/"+created.Code+"/usability", nil, "")
		require.Equal(t, http.StatusOK, uw2.Code)
		var usability2 resdto.UsabilityResponse
		require.NoError(t, json.Unmarshal(uw2.Body.Bytes(), &usability2))
		require.Equal(t, string(coupon.ReasonInactive), usability2.Reason)
	})

	s.Run("Error case: non-admin is forbidden", func() {
		t := s.T()

		token := authtest.Token(t, s.Config.JWT, uuid.New(), "user")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/coupons",
			reqdto.CreateCouponRequest{Name: "x", Type: "official"}, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
