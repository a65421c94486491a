package models

// AccountKind tags which collection owns a session. Email uniqueness is
// enforced per collection, so an ID is only meaningful together with its kind.
type AccountKind string

type UserRole string
type PurchaseStatus string
type InvitationStatus string

const (
	AccountKindUser      AccountKind = "user"
	AccountKindCandidate AccountKind = "candidate"
	AccountKindEmployer  AccountKind = "employer"

	UserRoleAdmin   UserRole = "admin"
	UserRoleGeneral UserRole = "general"

	PurchaseStatusPending PurchaseStatus = "pending"
	PurchaseStatusPaid    PurchaseStatus = "paid"
	PurchaseStatusFailed  PurchaseStatus = "failed"
	PurchaseStatusExpired PurchaseStatus = "expired"

	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// ValidAccountKind reports whether s names one of the three collections.
func ValidAccountKind(s string) bool {
	switch AccountKind(s) {
	case AccountKindUser, AccountKindCandidate, AccountKindEmployer:
		return true
	default:
		return false
	}
}
