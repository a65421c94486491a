package models

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is a purchasable credit bundle. Buying a plan credits the employer's
// wallet and extends the subscription window.
type Plan struct {
	BaseModel
	Name                 string         `gorm:"not null" json:"name"`
	Price                float64        `gorm:"not null" json:"price"`
	Currency             string         `gorm:"default:'SAR'" json:"currency"`
	InterviewCredits     int            `gorm:"default:0" json:"interview_credits"`
	ContactUnlockCredits int            `gorm:"default:0" json:"contact_unlock_credits"`
	DurationDays         int            `gorm:"default:30" json:"duration_days"`
	Features             datatypes.JSON `gorm:"type:jsonb" json:"features"` // {"priority_support": true, ...}
	IsActive             bool           `gorm:"default:true" json:"is_active"`
	SortOrder            int            `gorm:"default:0" json:"sort_order"`
}

// Purchase records one plan checkout. Credits land on the wallet only when
// the purchase transitions to paid.
type Purchase struct {
	BaseModel
	EmployerID string         `gorm:"type:uuid;not null;index" json:"employer_id"`
	PlanID     string         `gorm:"type:uuid;not null;index" json:"plan_id"`
	Amount     float64        `json:"amount"`
	Currency   string         `gorm:"default:'SAR'" json:"currency"`
	Status     PurchaseStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reference  string         `gorm:"uniqueIndex" json:"reference"`
	PaidAt     *time.Time     `json:"paid_at,omitempty"`

	// Relations
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan"`
}
