package integration_test

import (
	"net/http"
	"testing"

	"rtw_backend/internal/models"
	"rtw_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCandidateProfile(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Candidate struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			City  string `json:"city"`
		} `json:"candidate"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, candidate.ID, parsed.Candidate.ID)
	assert.Equal(t, candidate.Email, parsed.Candidate.Email)
	assert.Equal(t, "Riyadh", parsed.Candidate.City)
}

func TestUpdateCandidateProfile(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/candidates/me", token, map[string]interface{}{
		"job_title":        "Senior Electrician",
		"experience_years": 7,
		"city":             "Dammam",
		"languages":        []string{"ar", "en"},
		"visa_status":      "transferable_iqama",
		"dob":              "1992-04-17T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Candidate struct {
			JobTitle        string   `json:"job_title"`
			ExperienceYears int      `json:"experience_years"`
			City            string   `json:"city"`
			Languages       []string `json:"languages"`
			DOB             string   `json:"dob"`
		} `json:"candidate"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, "Senior Electrician", parsed.Candidate.JobTitle)
	assert.Equal(t, 7, parsed.Candidate.ExperienceYears)
	assert.Equal(t, "Dammam", parsed.Candidate.City)
	assert.Equal(t, []string{"ar", "en"}, parsed.Candidate.Languages)
	assert.Equal(t, "1992-04-17", parsed.Candidate.DOB, "dates normalize to YYYY-MM-DD")

	// Untouched fields keep their values.
	var reloaded models.Candidate
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", candidate.ID).Error)
	assert.Equal(t, candidate.Name, reloaded.Name)
}

func TestUpdateCandidateProfile_Unauthenticated(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	candidate := helpers.CreateCandidate(t, ts.DB, uniqueEmail("noauth"), "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/candidates/me", "", map[string]interface{}{
		"job_title": "Imposter",
		"city":      "Nowhere",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "NOT_AUTHENTICATED", errorCode(t, body))

	// The rejected request must not have written anything.
	var reloaded models.Candidate
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", candidate.ID).Error)
	assert.Empty(t, reloaded.JobTitle)
	assert.Equal(t, "Riyadh", reloaded.City)
}

func TestUpdateCandidateProfile_EmailChange(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)
	newEmail := uniqueEmail("changed")

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/candidates/me", token, map[string]interface{}{
		"email": newEmail,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	// Changing the address drops the account back to unverified.
	var reloaded models.Candidate
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", candidate.ID).Error)
	assert.Equal(t, newEmail, reloaded.Email)
	assert.False(t, reloaded.EmailVerified)
	assert.NotEmpty(t, reloaded.VerificationToken)
}

func TestUpdateCandidateProfile_EmailTaken(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)
	taken := uniqueEmail("taken")
	helpers.CreateCandidate(t, ts.DB, taken, "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/candidates/me", token, map[string]interface{}{
		"email": taken,
	})
	require.Equal(t, http.StatusConflict, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))
}

func TestUpdateEmployerProfile(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginEmployer(t, ts, 0, 0)

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/employers/me", token, map[string]interface{}{
		"company_name":       "Najd Construction",
		"responsible_person": "Khalid",
		"website":            "https://najd.example.com",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Employer struct {
			CompanyName       string `json:"company_name"`
			ResponsiblePerson string `json:"responsible_person"`
			Website           string `json:"website"`
		} `json:"employer"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, "Najd Construction", parsed.Employer.CompanyName)
	assert.Equal(t, "Khalid", parsed.Employer.ResponsiblePerson)
	assert.Equal(t, "https://najd.example.com", parsed.Employer.Website)
}

func TestCandidateDashboardStats(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	employerToken, _ := helpers.CreateAndLoginEmployer(t, ts, 2, 0)
	candidateToken, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/engagement/invitations", employerToken, map[string]interface{}{
		"candidate_id": candidate.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/me/stats", candidateToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Stats struct {
			InvitationsReceived int64 `json:"invitations_received"`
			InvitationsPending  int64 `json:"invitations_pending"`
			UnreadNotifications int64 `json:"unread_notifications"`
		} `json:"stats"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, int64(1), parsed.Stats.InvitationsReceived)
	assert.Equal(t, int64(1), parsed.Stats.InvitationsPending)
	assert.Equal(t, int64(1), parsed.Stats.UnreadNotifications, "the invite notification counts as unread")
}

func TestEmployerDashboardStats(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	employerToken, _ := helpers.CreateAndLoginEmployer(t, ts, 3, 2)
	_, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/engagement/invitations", employerToken, map[string]interface{}{
		"candidate_id": candidate.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/engagement/unlocks", employerToken, map[string]interface{}{
		"candidate_id": candidate.ID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/employers/me/stats", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Stats struct {
			Wallet struct {
				InterviewCredits     int `json:"interview_credits"`
				ContactUnlockCredits int `json:"contact_unlock_credits"`
			} `json:"wallet"`
			InvitationsSent    int64 `json:"invitations_sent"`
			InvitationsPending int64 `json:"invitations_pending"`
			ContactsUnlocked   int64 `json:"contacts_unlocked"`
			SubscriptionActive bool  `json:"subscription_active"`
		} `json:"stats"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, 2, parsed.Stats.Wallet.InterviewCredits)
	assert.Equal(t, 1, parsed.Stats.Wallet.ContactUnlockCredits)
	assert.Equal(t, int64(1), parsed.Stats.InvitationsSent)
	assert.Equal(t, int64(1), parsed.Stats.InvitationsPending)
	assert.Equal(t, int64(1), parsed.Stats.ContactsUnlocked)
	assert.False(t, parsed.Stats.SubscriptionActive)
}
