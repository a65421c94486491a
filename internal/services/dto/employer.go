package dto

import (
	"time"

	"rtw_backend/internal/models"
)

// UpdateEmployerRequest is a partial update; nil fields stay untouched.
type UpdateEmployerRequest struct {
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	CompanyName       *string `json:"company_name,omitempty" validate:"omitempty,min=2,max=150"`
	ResponsiblePerson *string `json:"responsible_person,omitempty" validate:"omitempty,max=100"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Whatsapp          *string `json:"whatsapp,omitempty" validate:"omitempty,max=20"`
	City              *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Website           *string `json:"website,omitempty" validate:"omitempty,url"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type WalletDTO struct {
	InterviewCredits     int `json:"interview_credits"`
	ContactUnlockCredits int `json:"contact_unlock_credits"`
}

type EmployerDTO struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	CompanyName       string `json:"company_name"`
	ResponsiblePerson string `json:"responsible_person"`
	Phone             string `json:"phone"`
	Whatsapp          string `json:"whatsapp"`
	City              string `json:"city"`
	Website           string `json:"website"`
	Description       string `json:"description"`

	Wallet                WalletDTO  `json:"wallet"`
	PlanID                *string    `json:"plan_id,omitempty"`
	PlanName              string     `json:"plan_name,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func EmployerDTOFromModel(e *models.Employer) EmployerDTO {
	out := EmployerDTO{
		ID:                e.ID,
		Email:             e.Email,
		EmailVerified:     e.EmailVerified,
		CompanyName:       e.CompanyName,
		ResponsiblePerson: e.ResponsiblePerson,
		Phone:             e.Phone,
		Whatsapp:          e.Whatsapp,
		City:              e.City,
		Website:           e.Website,
		Description:       e.Description,
		Wallet: WalletDTO{
			InterviewCredits:     e.Wallet.InterviewCredits,
			ContactUnlockCredits: e.Wallet.ContactUnlockCredits,
		},
		PlanID:                e.PlanID,
		SubscriptionExpiresAt: e.SubscriptionExpiresAt,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
		LastLoginAt:           e.LastLoginAt,
	}
	if e.Plan != nil {
		out.PlanName = e.Plan.Name
	}
	return out
}
