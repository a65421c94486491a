package dto

import (
	"time"

	"rtw_backend/internal/models"
)

// ---------------- Requests ----------------

type InviteToInterviewRequest struct {
	CandidateID string     `json:"candidate_id" validate:"required,uuid"`
	Message     string     `json:"message" validate:"omitempty,max=2000"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    string     `json:"location" validate:"omitempty,max=200"`
}

type RespondToInvitationRequest struct {
	Status string `json:"status" validate:"required,is-invitation-status"`
}

type UnlockContactRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
}

// ---------------- Responses ----------------

type InvitationDTO struct {
	ID          string                  `json:"id"`
	EmployerID  string                  `json:"employer_id"`
	CandidateID string                  `json:"candidate_id"`
	Message     string                  `json:"message"`
	ScheduledAt *time.Time              `json:"scheduled_at,omitempty"`
	Location    string                  `json:"location"`
	Status      models.InvitationStatus `json:"status"`
	RespondedAt *time.Time              `json:"responded_at,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type InvitationListResponse struct {
	Invitations []InvitationDTO `json:"invitations"`
	Meta        ListMeta        `json:"meta"`
}

type InviteResponse struct {
	Invitation InvitationDTO `json:"invitation"`
	Wallet     WalletDTO     `json:"wallet"`
}

// UnlockContactResponse returns the contact channels plus the remaining
// balance. AlreadyUnlocked is true when no credit was spent on this call.
type UnlockContactResponse struct {
	Contact         CandidateContactDTO `json:"contact"`
	Wallet          WalletDTO           `json:"wallet"`
	AlreadyUnlocked bool                `json:"already_unlocked"`
}

func InvitationDTOFromModel(inv *models.InterviewInvitation) InvitationDTO {
	return InvitationDTO{
		ID:          inv.ID,
		EmployerID:  inv.EmployerID,
		CandidateID: inv.CandidateID,
		Message:     inv.Message,
		ScheduledAt: inv.ScheduledAt,
		Location:    inv.Location,
		Status:      inv.Status,
		RespondedAt: inv.RespondedAt,
		CreatedAt:   inv.CreatedAt,
	}
}
