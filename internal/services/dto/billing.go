package dto

import (
	"encoding/json"
	"time"

	"rtw_backend/internal/models"
)

// ---------------- Requests ----------------

type CreatePurchaseRequest struct {
	PlanID string `json:"plan_id" validate:"required,uuid"`
}

type ConfirmPurchaseRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// ---------------- Responses ----------------

type PlanDTO struct {
	ID                   string                 `json:"id"`
	Name                 string                 `json:"name"`
	Price                float64                `json:"price"`
	Currency             string                 `json:"currency"`
	InterviewCredits     int                    `json:"interview_credits"`
	ContactUnlockCredits int                    `json:"contact_unlock_credits"`
	DurationDays         int                    `json:"duration_days"`
	Features             map[string]interface{} `json:"features,omitempty"`
	SortOrder            int                    `json:"sort_order"`
}

type PurchaseDTO struct {
	ID        string                `json:"id"`
	PlanID    string                `json:"plan_id"`
	PlanName  string                `json:"plan_name,omitempty"`
	Amount    float64               `json:"amount"`
	Currency  string                `json:"currency"`
	Status    models.PurchaseStatus `json:"status"`
	Reference string                `json:"reference"`
	PaidAt    *time.Time            `json:"paid_at,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseDTO `json:"purchases"`
	Meta      ListMeta      `json:"meta"`
}

type ConfirmPurchaseResponse struct {
	Purchase PurchaseDTO `json:"purchase"`
	Wallet   WalletDTO   `json:"wallet"`
}

func PlanDTOFromModel(p *models.Plan) PlanDTO {
	out := PlanDTO{
		ID:                   p.ID,
		Name:                 p.Name,
		Price:                p.Price,
		Currency:             p.Currency,
		InterviewCredits:     p.InterviewCredits,
		ContactUnlockCredits: p.ContactUnlockCredits,
		DurationDays:         p.DurationDays,
		SortOrder:            p.SortOrder,
	}
	if len(p.Features) > 0 {
		var features map[string]interface{}
		if err := json.Unmarshal(p.Features, &features); err == nil {
			out.Features = features
		}
	}
	return out
}

func PurchaseDTOFromModel(p *models.Purchase) PurchaseDTO {
	out := PurchaseDTO{
		ID:        p.ID,
		PlanID:    p.PlanID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
	if p.Plan.ID != "" {
		out.PlanName = p.Plan.Name
	}
	return out
}
