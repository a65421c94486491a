package repositories

import "errors"

// Shared sentinel errors. Services translate these into apperrors at the
// boundary of each operation.
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")

	ErrNotificationNotFound      = errors.New("notification not found")
	ErrMediaNotFound             = errors.New("media not found")
	ErrPlanNotFound              = errors.New("plan not found")
	ErrPurchaseNotFound          = errors.New("purchase not found")
	ErrPurchaseNotPending        = errors.New("purchase is not pending")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationAlreadyAnswered = errors.New("invitation already answered")
	ErrUnlockNotFound            = errors.New("contact unlock not found")

	// Conditional wallet updates report this when no credit was available.
	ErrInsufficientCredits = errors.New("insufficient credits")
)
