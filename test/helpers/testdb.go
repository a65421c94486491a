package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"rtw_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(t *testing.T, raw string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	require.NoError(t, err, "hashing test password must not fail")
	return string(hash)
}

// CreateCandidate inserts a verified candidate directly into the test
// transaction. password is the raw password; the row stores its hash.
func CreateCandidate(t *testing.T, db *gorm.DB, email, password string) *models.Candidate {
	candidate := &models.Candidate{
		Email: email,
		Name:  "Test Candidate",
		City:  "Riyadh",
		AccountCredentials: models.AccountCredentials{
			PasswordHash:  hashPassword(t, password),
			EmailVerified: true,
		},
	}
	require.NoError(t, db.Create(candidate).Error, "creating test candidate must not fail")
	return candidate
}

// CreateEmployer inserts a verified employer with the given wallet balances.
func CreateEmployer(t *testing.T, db *gorm.DB, email, password string, interviewCredits, unlockCredits int) *models.Employer {
	employer := &models.Employer{
		Email:       email,
		CompanyName: "Test Company",
		City:        "Jeddah",
		AccountCredentials: models.AccountCredentials{
			PasswordHash:  hashPassword(t, password),
			EmailVerified: true,
		},
		Wallet: models.Wallet{
			InterviewCredits:     interviewCredits,
			ContactUnlockCredits: unlockCredits,
		},
	}
	require.NoError(t, db.Create(employer).Error, "creating test employer must not fail")
	return employer
}

// CreateUser inserts a back-office account.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) *models.User {
	user := &models.User{
		Email: email,
		Name:  "Test User",
		Role:  role,
		AccountCredentials: models.AccountCredentials{
			PasswordHash:  hashPassword(t, password),
			EmailVerified: true,
		},
	}
	require.NoError(t, db.Create(user).Error, "creating test user must not fail")
	return user
}

// Login signs the account in through the API and returns the session token.
func Login(t *testing.T, ts *TestServer, email, password, kind string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
		"kind":     kind,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: %s", body)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Token, "login must return a session token")
	return parsed.Token
}

// CreateAndLoginCandidate creates a candidate with a unique address and signs
// it in.
func CreateAndLoginCandidate(t *testing.T, ts *TestServer) (string, *models.Candidate) {
	email := fmt.Sprintf("candidate_%d@test.com", time.Now().UnixNano())
	password := "Sup3rSecret!"
	candidate := CreateCandidate(t, ts.DB, email, password)
	return Login(t, ts, email, password, "candidate"), candidate
}

// CreateAndLoginEmployer creates an employer with wallet credits and signs it
// in.
func CreateAndLoginEmployer(t *testing.T, ts *TestServer, interviewCredits, unlockCredits int) (string, *models.Employer) {
	email := fmt.Sprintf("employer_%d@test.com", time.Now().UnixNano())
	password := "Sup3rSecret!"
	employer := CreateEmployer(t, ts.DB, email, password, interviewCredits, unlockCredits)
	return Login(t, ts, email, password, "employer"), employer
}

// CreatePlan inserts an active plan.
func CreatePlan(t *testing.T, db *gorm.DB, name string, price float64, interviewCredits, unlockCredits int) *models.Plan {
	plan := &models.Plan{
		Name:                 name,
		Price:                price,
		Currency:             "SAR",
		InterviewCredits:     interviewCredits,
		ContactUnlockCredits: unlockCredits,
		DurationDays:         30,
		IsActive:             true,
	}
	require.NoError(t, db.Create(plan).Error, "creating test plan must not fail")
	return plan
}

// CreateNotification inserts one notification row.
func CreateNotification(t *testing.T, db *gorm.DB, kind models.AccountKind, recipientID, notifType, title string) *models.Notification {
	notification := &models.Notification{
		RecipientKind: kind,
		RecipientID:   recipientID,
		Type:          notifType,
		Title:         title,
		Message:       "test message",
	}
	require.NoError(t, db.Create(notification).Error, "creating test notification must not fail")
	return notification
}
