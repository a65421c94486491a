package apperrors

import "net/http"

// Sentinel errors for the account domain. Services return these; the HTTP
// boundary renders them as-is.
var (
	ErrInvalidEmail = New(CodeInvalidEmail, "account", "A valid email address is required", http.StatusBadRequest)

	ErrInvalidPassword = New(CodeInvalidPassword, "account",
		"Password must be at least 8 characters and include upper and lower case letters, a digit and a special character",
		http.StatusBadRequest)

	ErrMissingPassword = New(CodeMissingPassword, "account", "Password is required", http.StatusBadRequest)

	ErrInvalidCredentials = New(CodeInvalidCredentials, "account", "Invalid email or password", http.StatusUnauthorized)

	ErrEmailExists = New(CodeEmailExists, "account", "Email already exists", http.StatusConflict)

	ErrInvalidToken = New(CodeInvalidToken, "account", "Invalid token", http.StatusBadRequest)

	ErrInvalidOrExpiredToken = New(CodeInvalidOrExpiredToken, "account",
		"This link is invalid or has expired", http.StatusBadRequest)

	ErrNotAuthenticated = New(CodeNotAuthenticated, "auth", "Not authenticated", http.StatusUnauthorized)

	ErrAccountNotFound = New(CodeNotFound, "account", "Account not found", http.StatusNotFound)
)

// Sentinel errors for notifications.
var (
	ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)
)

// Sentinel errors for billing and engagement.
var (
	ErrPlanNotFound     = New(CodeNotFound, "billing", "Plan not found", http.StatusNotFound)
	ErrPurchaseNotFound = New(CodeNotFound, "billing", "Purchase not found", http.StatusNotFound)

	ErrPurchaseNotPending = New(CodeConflict, "billing",
		"Purchase is not awaiting payment", http.StatusConflict)

	ErrInsufficientCredits = New(CodeInsufficientCredits, "billing",
		"Not enough credits, top up your wallet to continue", http.StatusPaymentRequired)

	ErrInvitationNotFound = New(CodeNotFound, "engagement", "Interview invitation not found", http.StatusNotFound)

	ErrInvitationAlreadyAnswered = New(CodeConflict, "engagement",
		"Interview invitation has already been answered", http.StatusConflict)

	ErrCandidateNotFound = New(CodeNotFound, "engagement", "Candidate not found", http.StatusNotFound)
)

// Sentinel errors for media.
var (
	ErrMediaNotFound = New(CodeNotFound, "media", "Media not found", http.StatusNotFound)

	ErrUnsupportedMediaType = New(CodeValidationError, "media",
		"Unsupported file type", http.StatusUnsupportedMediaType)

	ErrMediaTooLarge = New(CodeValidationError, "media",
		"File exceeds the maximum allowed size", http.StatusRequestEntityTooLarge)
)
