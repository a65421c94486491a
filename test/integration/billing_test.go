package integration_test

import (
	"net/http"
	"testing"
	"time"

	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPlans_Public(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	plan := helpers.CreatePlan(t, ts.DB, "Growth", 499, 10, 25)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/plans", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Plans []struct {
			ID               string  `json:"id"`
			Name             string  `json:"name"`
			Price            float64 `json:"price"`
			InterviewCredits int     `json:"interview_credits"`
		} `json:"plans"`
	}
	decode(t, body, &parsed)
	require.NotEmpty(t, parsed.Plans)

	var found bool
	for _, p := range parsed.Plans {
		if p.ID == plan.ID {
			found = true
			assert.Equal(t, "Growth", p.Name)
			assert.Equal(t, float64(499), p.Price)
			assert.Equal(t, 10, p.InterviewCredits)
		}
	}
	assert.True(t, found, "the created plan must be listed")
}

func TestPurchaseFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, employer := helpers.CreateAndLoginEmployer(t, ts, 1, 2)
	plan := helpers.CreatePlan(t, ts.DB, "Starter", 199, 5, 10)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", token, map[string]interface{}{
		"plan_id": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var created struct {
		Purchase struct {
			ID        string  `json:"id"`
			Status    string  `json:"status"`
			Amount    float64 `json:"amount"`
			Reference string  `json:"reference"`
		} `json:"purchase"`
	}
	decode(t, body, &created)
	assert.Equal(t, "pending", created.Purchase.Status)
	assert.Equal(t, float64(199), created.Purchase.Amount)
	require.NotEmpty(t, created.Purchase.Reference)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases/confirm", token, map[string]interface{}{
		"reference": created.Purchase.Reference,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var confirmed struct {
		Purchase struct {
			Status string `json:"status"`
		} `json:"purchase"`
		Wallet struct {
			InterviewCredits     int `json:"interview_credits"`
			ContactUnlockCredits int `json:"contact_unlock_credits"`
		} `json:"wallet"`
	}
	decode(t, body, &confirmed)
	assert.Equal(t, "paid", confirmed.Purchase.Status)
	assert.Equal(t, 6, confirmed.Wallet.InterviewCredits, "plan credits add to the existing balance")
	assert.Equal(t, 12, confirmed.Wallet.ContactUnlockCredits)

	// The subscription window opens and the wallet persists.
	var reloaded models.Employer
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", employer.ID).Error)
	assert.Equal(t, 6, reloaded.Wallet.InterviewCredits)
	require.NotNil(t, reloaded.SubscriptionExpiresAt)
	require.NotNil(t, reloaded.PlanID)
	assert.Equal(t, plan.ID, *reloaded.PlanID)

	// A settled payment notifies the employer.
	var notifications int64
	require.NoError(t, ts.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", employer.ID, repositories.NotificationTypePurchaseConfirmed).
		Count(&notifications).Error)
	assert.Equal(t, int64(1), notifications)
}

func TestConfirmPurchase_Twice(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)
	plan := helpers.CreatePlan(t, ts.DB, "Starter", 199, 5, 10)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", token, map[string]interface{}{
		"plan_id": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var created struct {
		Purchase struct {
			Reference string `json:"reference"`
		} `json:"purchase"`
	}
	decode(t, body, &created)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases/confirm", token, map[string]interface{}{
		"reference": created.Purchase.Reference,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	// A second confirm must not credit the wallet again.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases/confirm", token, map[string]interface{}{
		"reference": created.Purchase.Reference,
	})
	require.Equal(t, http.StatusConflict, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "CONFLICT", errorCode(t, body))
}

func TestConfirmPurchase_ExtendsSubscription(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, employer := helpers.CreateAndLoginEmployer(t, ts, 0, 0)
	plan := helpers.CreatePlan(t, ts.DB, "Starter", 199, 5, 10)

	buyAndConfirm := func() {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", token, map[string]interface{}{
			"plan_id": plan.ID,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

		var created struct {
			Purchase struct {
				Reference string `json:"reference"`
			} `json:"purchase"`
		}
		decode(t, body, &created)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases/confirm", token, map[string]interface{}{
			"reference": created.Purchase.Reference,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)
	}

	// An early renewal stacks on the running window instead of restarting it.
	buyAndConfirm()
	buyAndConfirm()

	var reloaded models.Employer
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", employer.ID).Error)
	require.NotNil(t, reloaded.SubscriptionExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 2*plan.DurationDays),
		*reloaded.SubscriptionExpiresAt, time.Minute)
	assert.Equal(t, 10, reloaded.Wallet.InterviewCredits)
}

func TestConfirmPurchase_ForeignReference(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)
	otherToken, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)
	plan := helpers.CreatePlan(t, ts.DB, "Starter", 199, 5, 10)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", ownerToken, map[string]interface{}{
		"plan_id": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var created struct {
		Purchase struct {
			Reference string `json:"reference"`
		} `json:"purchase"`
	}
	decode(t, body, &created)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases/confirm", otherToken, map[string]interface{}{
		"reference": created.Purchase.Reference,
	})
	require.Equal(t, http.StatusNotFound, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestCreatePurchase_UnknownPlan(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", token, map[string]interface{}{
		"plan_id": "5a0f9f6e-0000-4000-8000-000000000000",
	})
	require.Equal(t, http.StatusNotFound, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestBilling_EmployerOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/billing/purchases", token, nil)
	require.Equal(t, http.StatusForbidden, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestGetWallet(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginEmployer(t, ts, 4, 7)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/billing/wallet", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Wallet struct {
			InterviewCredits     int `json:"interview_credits"`
			ContactUnlockCredits int `json:"contact_unlock_credits"`
		} `json:"wallet"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, 4, parsed.Wallet.InterviewCredits)
	assert.Equal(t, 7, parsed.Wallet.ContactUnlockCredits)
}

func TestListPurchases(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)
	plan := helpers.CreatePlan(t, ts.DB, "Starter", 199, 5, 10)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/billing/purchases", token, map[string]interface{}{
		"plan_id": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/billing/purchases", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Purchases []struct {
			PlanID   string `json:"plan_id"`
			PlanName string `json:"plan_name"`
			Status   string `json:"status"`
		} `json:"purchases"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decode(t, body, &parsed)
	require.Len(t, parsed.Purchases, 1)
	assert.Equal(t, plan.ID, parsed.Purchases[0].PlanID)
	assert.Equal(t, "Starter", parsed.Purchases[0].PlanName)
	assert.Equal(t, "pending", parsed.Purchases[0].Status)
	assert.Equal(t, int64(1), parsed.Meta.Total)
}
