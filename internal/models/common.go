package models

import (
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AccountCredentials are the auth columns shared by all three account
// collections. Verification and reset tokens expire at query time; there is
// no background sweep for them.
type AccountCredentials struct {
	PasswordHash         string     `gorm:"not null" json:"-"`
	EmailVerified        bool       `gorm:"default:false" json:"email_verified"`
	VerificationToken    string     `json:"-"`
	VerificationTokenExp *time.Time `json:"-"`
	ResetToken           string     `json:"-"`
	ResetTokenExp        *time.Time `json:"-"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
}
