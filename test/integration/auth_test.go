package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

func TestRegisterCandidate(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("register")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/candidate", "", map[string]interface{}{
		"email":          email,
		"password":       "Sup3rSecret!",
		"name":           "Aisha Al-Harbi",
		"city":           "Riyadh",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Account struct {
			ID            string `json:"id"`
			Kind          string `json:"kind"`
			Email         string `json:"email"`
			EmailVerified bool   `json:"email_verified"`
		} `json:"account"`
		Message string `json:"message"`
	}
	decode(t, body, &parsed)
	assert.NotEmpty(t, parsed.Account.ID)
	assert.Equal(t, "candidate", parsed.Account.Kind)
	assert.Equal(t, email, parsed.Account.Email)
	assert.False(t, parsed.Account.EmailVerified, "a fresh account starts unverified")
	assert.NotEmpty(t, parsed.Message)

	// The row carries a pending verification token.
	var candidate models.Candidate
	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	assert.NotEmpty(t, candidate.VerificationToken)
	require.NotNil(t, candidate.VerificationTokenExp)
	assert.True(t, candidate.VerificationTokenExp.After(time.Now()))
}

func TestRegisterCandidate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("duplicate")
	helpers.CreateCandidate(t, ts.DB, email, "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/candidate", "", map[string]interface{}{
		"email":          email,
		"password":       "An0therSecret!",
		"name":           "Second Account",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusConflict, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))
}

func TestRegisterCandidate_WeakPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/candidate", "", map[string]interface{}{
		"email":          uniqueEmail("weak"),
		"password":       "password",
		"name":           "Weak Password",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}

func TestRegisterEmployer(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("employer")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/employer", "", map[string]interface{}{
		"email":          email,
		"password":       "Sup3rSecret!",
		"company_name":   "Al-Faisal Trading",
		"city":           "Jeddah",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	// A new employer's wallet starts empty.
	var employer models.Employer
	require.NoError(t, ts.DB.Where("email = ?", email).First(&employer).Error)
	assert.Equal(t, 0, employer.Wallet.InterviewCredits)
	assert.Equal(t, 0, employer.Wallet.ContactUnlockCredits)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("login")
	helpers.CreateCandidate(t, ts.DB, email, "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "Sup3rSecret!",
		"kind":     "candidate",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Account struct {
			Email string `json:"email"`
			Kind  string `json:"kind"`
		} `json:"account"`
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, email, parsed.Account.Email)
	assert.Equal(t, "candidate", parsed.Account.Kind)
	assert.NotEmpty(t, parsed.Token)
	assert.True(t, parsed.ExpiresAt.After(time.Now()))

	// The session also lands in an HTTP-only cookie.
	var sessionCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.Equal(t, parsed.Token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("wrongpass")
	helpers.CreateCandidate(t, ts.DB, email, "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "NotTheP4ssword!",
		"kind":     "candidate",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestLogin_UnknownAccount(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    uniqueEmail("nobody"),
		"password": "Sup3rSecret!",
		"kind":     "employer",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestVerifyEmailFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("verify")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/candidate", "", map[string]interface{}{
		"email":          email,
		"password":       "Sup3rSecret!",
		"name":           "Verify Me",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var candidate models.Candidate
	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	require.NotEmpty(t, candidate.VerificationToken)

	verifyPath := fmt.Sprintf("/api/v1/auth/verify-email?token=%s&email=%s&type=candidate",
		candidate.VerificationToken, email)
	res, body = ts.SendRequest(t, http.MethodGet, verifyPath, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	assert.True(t, candidate.EmailVerified)
	assert.Empty(t, candidate.VerificationToken, "verification must clear the token")

	// The token is single-use.
	res, body = ts.SendRequest(t, http.MethodGet, verifyPath, "", nil)
	require.Equal(t, http.StatusBadRequest, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", errorCode(t, body))
}

func TestResendVerification(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("resend")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register/candidate", "", map[string]interface{}{
		"email":          email,
		"password":       "Sup3rSecret!",
		"name":           "Resend Me",
		"accepted_terms": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var candidate models.Candidate
	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	firstToken := candidate.VerificationToken
	require.NotEmpty(t, firstToken)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-verification", "", map[string]interface{}{
		"email": email,
		"kind":  "candidate",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	// A fresh token replaces the original one and stays redeemable.
	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	assert.NotEmpty(t, candidate.VerificationToken)
	assert.NotEqual(t, firstToken, candidate.VerificationToken)
	require.NotNil(t, candidate.VerificationTokenExp)
	assert.True(t, candidate.VerificationTokenExp.After(time.Now()))

	verifyPath := fmt.Sprintf("/api/v1/auth/verify-email?token=%s&email=%s&type=candidate",
		candidate.VerificationToken, email)
	res, body = ts.SendRequest(t, http.MethodGet, verifyPath, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)
}

func TestResendVerification_UnknownEmailStillSucceeds(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-verification", "", map[string]interface{}{
		"email": uniqueEmail("ghost_resend"),
		"kind":  "employer",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Success bool `json:"success"`
	}
	decode(t, body, &parsed)
	assert.True(t, parsed.Success, "resend-verification must not reveal whether the address exists")
}

func TestForgotPassword_UnknownEmailStillSucceeds(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": uniqueEmail("ghost"),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Success bool `json:"success"`
	}
	decode(t, body, &parsed)
	assert.True(t, parsed.Success, "forgot-password must not reveal whether the address exists")
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("reset")
	helpers.CreateCandidate(t, ts.DB, email, "Sup3rSecret!")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": email,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var candidate models.Candidate
	require.NoError(t, ts.DB.Where("email = ?", email).First(&candidate).Error)
	require.NotEmpty(t, candidate.ResetToken)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":    candidate.ResetToken,
		"email":    email,
		"password": "Brand#NewPass1",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	// The new password works, the old one does not.
	helpers.Login(t, ts, email, "Brand#NewPass1", "candidate")
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "Sup3rSecret!",
		"kind":     "candidate",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)

	// The reset token is single-use.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":    candidate.ResetToken,
		"email":    email,
		"password": "Yet@Another2",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", errorCode(t, body))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	email := uniqueEmail("expired")
	candidate := helpers.CreateCandidate(t, ts.DB, email, "Sup3rSecret!")

	// A token whose expiry has already passed must be dead, even though the
	// row still carries it.
	staleExp := time.Now().Add(-time.Minute)
	require.NoError(t, ts.DB.Model(&models.Candidate{}).Where("id = ?", candidate.ID).
		Updates(map[string]interface{}{
			"reset_token":     "1f2e3d4c5b6a79881f2e3d4c5b6a7988",
			"reset_token_exp": staleExp,
		}).Error)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":    "1f2e3d4c5b6a79881f2e3d4c5b6a7988",
		"email":    email,
		"password": "Brand#NewPass1",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", errorCode(t, body))

	// The password is untouched.
	helpers.Login(t, ts, email, "Sup3rSecret!", "candidate")
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "Sup3rSecret!",
		"new_password":     "Turn3d#Over9",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	helpers.Login(t, ts, candidate.Email, "Turn3d#Over9", "candidate")
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "NotTheP4ssword!",
		"new_password":     "Turn3d#Over9",
	})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestMe(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Account struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"account"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, candidate.ID, parsed.Account.ID)
	assert.Equal(t, "candidate", parsed.Account.Kind)
}

func TestMe_Unauthenticated(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "NOT_AUTHENTICATED", errorCode(t, body))
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/auth/account", token, map[string]interface{}{
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var count int64
	require.NoError(t, ts.DB.Model(&models.Candidate{}).Where("email = ?", candidate.Email).Count(&count).Error)
	assert.Zero(t, count, "the account row must be gone")
}
