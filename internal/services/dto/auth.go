package dto

import (
	"time"

	"rtw_backend/internal/models"
)

// ---------------- Requests ----------------

type RegisterCandidateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong-password"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	City     string `json:"city" validate:"omitempty,max=100"`

	AcceptedTerms bool `json:"accepted_terms" validate:"required"`
}

type RegisterEmployerRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,strong-password"`
	CompanyName       string `json:"company_name" validate:"required,min=2,max=150"`
	ResponsiblePerson string `json:"responsible_person" validate:"omitempty,max=100"`
	Phone             string `json:"phone" validate:"omitempty,max=20"`
	City              string `json:"city" validate:"omitempty,max=100"`

	AcceptedTerms bool `json:"accepted_terms" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Kind     string `json:"kind" validate:"required,is-account-kind"`
	// RememberMe stretches the session from 24h to 30 days.
	RememberMe bool `json:"remember_me"`
}

type VerifyEmailQuery struct {
	Token string `form:"token" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	Kind  string `form:"type" validate:"required,is-account-kind"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"required,is-account-kind"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong-password"`
	// Kind is a hint; when absent the reset walks employers, candidates, users.
	Kind string `json:"kind" validate:"omitempty,is-account-kind"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong-password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// ---------------- Responses ----------------

// AccountDTO is the cross-kind view of whoever is signed in.
type AccountDTO struct {
	ID            string             `json:"id"`
	Kind          models.AccountKind `json:"kind"`
	Email         string             `json:"email"`
	Name          string             `json:"name,omitempty"`
	Role          models.UserRole    `json:"role,omitempty"`
	EmailVerified bool               `json:"email_verified"`
	LastLoginAt   *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type AuthResponse struct {
	Account AccountDTO `json:"account"`
	// Token mirrors the session cookie for non-browser clients.
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterResponse struct {
	Account AccountDTO `json:"account"`
	Message string     `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func AccountDTOFromUser(u *models.User) AccountDTO {
	return AccountDTO{
		ID:            u.ID,
		Kind:          models.AccountKindUser,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

func AccountDTOFromCandidate(c *models.Candidate) AccountDTO {
	return AccountDTO{
		ID:            c.ID,
		Kind:          models.AccountKindCandidate,
		Email:         c.Email,
		Name:          c.Name,
		EmailVerified: c.EmailVerified,
		LastLoginAt:   c.LastLoginAt,
		CreatedAt:     c.CreatedAt,
	}
}

func AccountDTOFromEmployer(e *models.Employer) AccountDTO {
	return AccountDTO{
		ID:            e.ID,
		Kind:          models.AccountKindEmployer,
		Email:         e.Email,
		Name:          e.CompanyName,
		EmailVerified: e.EmailVerified,
		LastLoginAt:   e.LastLoginAt,
		CreatedAt:     e.CreatedAt,
	}
}
