package models

import "time"

// Wallet tracks prepaid credits an employer spends on engagement actions.
// Embedded into Employer with a wallet_ column prefix.
type Wallet struct {
	InterviewCredits     int `gorm:"default:0" json:"interview_credits"`
	ContactUnlockCredits int `gorm:"default:0" json:"contact_unlock_credits"`
}

// Employer is a company account.
type Employer struct {
	BaseModel
	AccountCredentials

	Email             string `gorm:"uniqueIndex;not null" json:"email"`
	CompanyName       string `json:"company_name"`
	ResponsiblePerson string `json:"responsible_person"`
	Phone             string `json:"phone"`
	Whatsapp          string `json:"whatsapp"`
	City              string `json:"city"`
	Website           string `json:"website"`
	Description       string `json:"description"`

	Wallet Wallet `gorm:"embedded;embeddedPrefix:wallet_" json:"wallet"`

	// Active subscription, credited via purchases
	PlanID                *string    `gorm:"type:uuid" json:"plan_id"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`

	AcceptedTermsAt *time.Time `json:"accepted_terms_at,omitempty"`

	// Relations
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
